package prompts

import (
	"fmt"
	"strings"
)

// CharacterProfile is one side of a relationship suggestion, with list fields
// already decoded.
type CharacterProfile struct {
	Name              string
	Description       string
	Goal              []string
	Personality       []string
	IntroductionStory string
}

// SuggestRelationshipParams carries the gathered context for a relationship
// suggestion between two characters.
type SuggestRelationshipParams struct {
	Source CharacterProfile
	Target CharacterProfile
	// Tendency biases the suggested relationship from very hostile (-2) to
	// very friendly (+2); 0 leaves it open.
	Tendency int
	Keyword  string
	// Reverse describes an existing relationship in the opposite direction,
	// when one exists, so the suggestion stays consistent with it.
	Reverse *ReverseRelationship
}

// ReverseRelationship is the existing target->source relationship.
type ReverseRelationship struct {
	Type        string
	Description string
}

// SuggestRelationship builds the prompt for recommending a relationship
// between two characters. The response is a {type, description} JSON object.
func SuggestRelationship(p SuggestRelationshipParams) string {
	var instructions []string
	switch p.Tendency {
	case -2:
		instructions = append(instructions, "두 캐릭터의 관계는 '매우 비우호적' (예: 철천지 원수, 서로를 파멸시키려는 경쟁자)이어야 합니다.")
	case -1:
		instructions = append(instructions, "두 캐릭터의 관계는 '비우호적' (예: 라이벌, 불신하는 사이)인 방향으로 설정해주세요.")
	case 1:
		instructions = append(instructions, "두 캐릭터의 관계는 '우호적' (예: 동료, 친구, 조력자)인 방향으로 설정해주세요.")
	case 2:
		instructions = append(instructions, "두 캐릭터의 관계는 '매우 우호적' (예: 연인, 가족, 목숨을 바칠 수 있는 친구)이어야 합니다.")
	}
	if p.Keyword != "" {
		instructions = append(instructions, fmt.Sprintf("특히, 관계 설정 시 '%s' 라는 키워드를 핵심적으로 반영해주세요.", p.Keyword))
	}

	var reverseContext string
	if p.Reverse != nil {
		reverseContext = fmt.Sprintf(`
---
[기존 관계 정보]
참고: 현재 '%s'는 '%s'를 '%s' 관계로 생각하고 있습니다.
(설명: %s)
이 정보를 바탕으로, '%s'가 '%s'를 어떻게 생각할지 일관성 있게 작성해주세요.
---
`, p.Target.Name, p.Source.Name, p.Reverse.Type, p.Reverse.Description, p.Source.Name, p.Target.Name)
	}

	var b strings.Builder
	b.WriteString(`당신은 두 인물 사이의 관계를 창의적으로 설정하는 스토리 작가입니다.
아래 제공된 두 캐릭터의 프로필과 기존 관계 정보를 자세히 분석하여, 둘 사이에 존재할 법한 가장 흥미롭고 개연성 있는 관계를 추천해주세요.

**매우 중요한 규칙:**
1.  결과는 반드시 아래 명시된 JSON 스키마를 따르는 JSON 객체로만 응답해야 합니다.
2.  'type'에는 관계를 한두 단어로 요약한 키워드를, 'description'에는 그 관계에 대한 2~3문장의 구체적인 설명을 작성해주세요.
3.  두 캐릭터의 성격, 목표, 배경 등을 모두 고려하여 깊이 있는 관계를 설정해야 합니다.
4.  **생성되는 관계 설명은 반드시 '캐릭터 A'와 '캐릭터 B' 두 사람 사이의 직접적인 이야기에만 집중해야 합니다. 각 캐릭터의 프로필에 언급된 제3의 인물은 절대 관계 설명에 포함시키지 마세요.**
`)
	fmt.Fprintf(&b, "5.  %s\n", strings.Join(instructions, "\n"))
	b.WriteString(reverseContext)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "[캐릭터 A 프로필 (%s)]\n", p.Source.Name)
	fmt.Fprintf(&b, "- 설명: %s\n", p.Source.Description)
	fmt.Fprintf(&b, "- 목표: %s\n", strings.Join(p.Source.Goal, ", "))
	fmt.Fprintf(&b, "- 성격: %s\n", strings.Join(p.Source.Personality, ", "))
	fmt.Fprintf(&b, "- 등장 서사: %s\n\n", p.Source.IntroductionStory)
	fmt.Fprintf(&b, "[캐릭터 B 프로필 (%s)]\n", p.Target.Name)
	fmt.Fprintf(&b, "- 설명: %s\n", p.Target.Description)
	fmt.Fprintf(&b, "- 목표: %s\n", strings.Join(p.Target.Goal, ", "))
	fmt.Fprintf(&b, "- 성격: %s\n", strings.Join(p.Target.Personality, ", "))
	fmt.Fprintf(&b, "- 등장 서사: %s\n", p.Target.IntroductionStory)
	b.WriteString(`---

**출력 JSON 스키마:**
{
  "type": "관계 유형 (예: 숙명의 라이벌, 비밀 조력자, 옛 스승과 제자)",
  "description": "관계에 대한 구체적인 설명 (2~3 문장)."
}
`)
	return b.String()
}
