package prompts

import (
	"fmt"
	"strings"
)

// Level controls how strongly generated content must tie into the project's
// main worldview.
type Level string

const (
	LevelNone   Level = "none"
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ParseLevel normalizes a client-supplied level string; anything unknown
// falls back to LevelNone.
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelLow, LevelMedium, LevelHigh:
		return Level(s)
	default:
		return LevelNone
	}
}

// ContextCard is one referenced card summarized for prompt context.
type ContextCard struct {
	Name        string
	Description string
}

// GenerateCharacterParams carries the gathered context for a character
// generation call.
type GenerateCharacterParams struct {
	Keywords          string
	WorldviewContext  string
	WorldviewLevel    Level
	WorldviewCards    []ContextCard // title/content pairs, Name holds the title
	ExistingCharacter []ContextCard
}

// GenerateCharacter builds the prompt for creating one new character card.
// The response must be a JSON object matching the card schema, with at least
// five quotes.
func GenerateCharacter(p GenerateCharacterParams) string {
	var worldviewCardsContext string
	if len(p.WorldviewCards) > 0 {
		lines := make([]string, 0, len(p.WorldviewCards))
		for _, c := range p.WorldviewCards {
			lines = append(lines, fmt.Sprintf("- %s: %s", c.Name, c.Description))
		}
		worldviewCardsContext = "\n**참고할 서브 설정 카드 정보:**\n" + strings.Join(lines, "\n")
	}

	var characterContext string
	if len(p.ExistingCharacter) > 0 {
		lines := make([]string, 0, len(p.ExistingCharacter))
		for _, c := range p.ExistingCharacter {
			lines = append(lines, fmt.Sprintf("- 이름: %s, 설명: %s", c.Name, c.Description))
		}
		characterContext = "\n**참고할 기존 캐릭터 정보:**\n" + strings.Join(lines, "\n")
	}

	var worldviewContext string
	if p.WorldviewContext != "" {
		base := fmt.Sprintf("\n**참고할 메인 세계관 설정:**\n---\n%s\n---", p.WorldviewContext)
		var levelInstruction string
		switch p.WorldviewLevel {
		case LevelHigh:
			levelInstruction = "\n- 캐릭터의 모든 설정은 메인 세계관 및 서브 설정과 깊고 직접적으로 연결되어야 합니다."
		case LevelMedium:
			levelInstruction = "\n- 캐릭터는 메인 세계관 및 서브 설정의 사회, 문화적 배경에 자연스럽게 녹아들어야 합니다."
		case LevelLow:
			levelInstruction = "\n- 캐릭터의 개인적인 서사 중심으로 서술하되, 세계관의 큰 흐름과는 무관하게 설정해주세요."
		default:
			levelInstruction = "\n- 세계관의 고유 설정(지명, 특정 사건 등)은 언급하지 말고, 장르와 분위기만 참고하세요."
		}
		worldviewContext = base + levelInstruction
	}

	var b strings.Builder
	b.WriteString(`당신은 매력적인 스토리를 만드는 세계관 설정 작가입니다.
아래 '정보'와 '지시사항'을 모두 종합적으로 고려하여, 이 세계에 자연스럽게 녹아들 수 있는 새로운 판타지 캐릭터 카드 1개를 생성해 주세요.
`)
	b.WriteString(worldviewContext)
	b.WriteString(worldviewCardsContext)
	b.WriteString(characterContext)
	fmt.Fprintf(&b, "\n\n**요청 키워드:** %s\n", p.Keywords)
	b.WriteString(`
**매우 중요한 규칙:**
1.  **HTML 태그는 절대 사용하지 말고, 순수한 텍스트로만 응답해야 합니다.**
2.  결과는 반드시 아래 명시된 JSON 스키마를 따르는 JSON 객체로만 응답해야 합니다. 다른 어떤 텍스트도 포함하지 마세요.

**출력 JSON 스키마:**
{
  "name": "캐릭터 이름",
  "description": "캐릭터의 외모, 성격, 배경 이야기 (순수 텍스트).",
  "goal": "캐릭터의 목표 또는 동기 (순수 텍스트)",
  "personality": "성격 키워드 (순수 텍스트)",
  "abilities": "보유 기술 또는 능력 (순수 텍스트)",
  "quote": ["캐릭터를 대표하는 대사 1", "캐릭터를 대표하는 대사 2", "캐릭터를 대표하는 대사 3", "캐릭터를 대표하는 대사 4", "캐릭터를 대표하는 대사 5"],
  "introduction_story": "등장 서사 (순수 텍스트)."
}
`)
	return b.String()
}

// EditCharacterCardsParams carries the gathered context for an AI card edit.
// ProjectContextJSON is the selected slice of the project serialized as
// indented JSON.
type EditCharacterCardsParams struct {
	EditedCardName     string
	EditRelated        bool
	HasWorldview       bool
	WorldviewLevel     Level
	ProjectContextJSON string
	PromptText         string
}

// EditCharacterCards builds the prompt for revising one or more character
// cards. The response is an updated_cards JSON envelope; list fields must come
// back as arrays and ids must be preserved.
func EditCharacterCards(p EditCharacterCardsParams) string {
	editingInstruction := fmt.Sprintf(
		"**오직 '%s' 캐릭터만 수정**해야 합니다. 컨텍스트로 제공된 다른 캐릭터 정보는 이야기의 일관성을 위한 **참고 자료로만 활용**하고, 절대로 그들의 설명이나 서사를 수정해서는 안 됩니다.",
		p.EditedCardName)
	if p.EditRelated {
		editingInstruction = fmt.Sprintf(
			"사용자의 요청에 따라 캐릭터 정보를 수정할 때, **'%s'** 캐릭터를 중심으로 서사를 변경해주세요. 한 캐릭터의 수정이 다른 캐릭터의 서사에 영향을 준다면, 컨텍스트로 제공된 관련된 다른 캐릭터들의 정보도 자연스럽게 수정해야 합니다.",
			p.EditedCardName)
	}

	levelInstruction := ""
	if p.HasWorldview {
		switch p.WorldviewLevel {
		case LevelHigh:
			levelInstruction = "\n- **세계관 반영(높음):** 수정되는 내용은 세계관의 핵심 갈등 및 설정과 깊게 연관되어야 합니다."
		case LevelMedium:
			levelInstruction = "\n- **세계관 반영(중간):** 수정되는 내용은 세계관의 사회, 문화적 배경에 자연스럽게 녹아들어야 합니다."
		case LevelLow:
			levelInstruction = "\n- **세계관 반영(낮음):** 세계관의 큰 흐름과는 무관한, 캐릭터의 개인적인 서사 중심으로 수정해주세요."
		default:
			levelInstruction = "\n- **세계관 반영(최소):** 세계관의 고유 설정(지명, 인물, 특정 사건)은 언급하지 말고, 장르와 분위기만 참고해주세요."
		}
	}

	var b strings.Builder
	b.WriteString(`당신은 세계관 설정의 일관성을 유지하는 전문 편집자입니다.
아래에 제공되는 '프로젝트 데이터'와 '사용자 요청사항'을 바탕으로 캐릭터 카드 정보를 수정해주세요.

**매우 중요한 규칙:**
1. **HTML 태그는 절대 사용하지 말고, 순수한 텍스트로만 응답해야 합니다.**
`)
	fmt.Fprintf(&b, "2. %s\n", editingInstruction)
	b.WriteString("3. 캐릭터의 핵심 설정(예: 성격, 목표)이 변경되면, 관련된 다른 모든 항목(설명, 대사 등)도 논리적 일관성을 유지하도록 함께 수정해야 합니다.\n")
	b.WriteString("4. 'quote', 'personality', 'abilities', 'goal' 항목은 반드시 **배열(리스트)** 형태로 반환해야 합니다. 'quote'는 최소 5개 이상이어야 합니다.\n")
	fmt.Fprintf(&b, "5. 절대로 기존 카드의 'id'는 변경해서는 안 됩니다.%s\n", levelInstruction)
	b.WriteString(`6. 최종 결과는 반드시 아래 명시된 JSON 형식으로만 반환해야 합니다. 다른 어떤 설명도 추가하지 마세요.

---
[프로젝트 데이터 (사용자가 선택한 일부)]
`)
	b.WriteString(p.ProjectContextJSON)
	b.WriteString("\n---\n[사용자 요청사항]\n")
	fmt.Fprintf(&b, "%q\n", p.PromptText)
	b.WriteString(`---

[출력 JSON 형식]
{
  "updated_cards": [
    {
      "id": "수정된 카드의 id",
      "name": "새로운 이름 (변경 시)",
      "description": "새로운 설명 (순수 텍스트)",
      "goal": ["새로운 목표 1", "새로운 목표 2"],
      "personality": ["새로운 성격 키워드 1", "새로운 성격 키워드 2"],
      "abilities": ["새로운 기술 또는 능력 1", "새로운 기술 또는 능력 2"],
      "quote": ["새로운 대사 1", "새로운 대사 2", "새로운 대사 3", "새로운 대사 4", "새로운 대사 5"],
      "introduction_story": "새로운 서사 (순수 텍스트)"
    }
  ]
}
`)
	return b.String()
}
