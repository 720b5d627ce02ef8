// Package prompts builds the Korean-language prompts sent to the generation
// provider. Builders are pure string assembly; callers gather the database
// context and pass it in already formatted.
package prompts

import (
	"fmt"
	"strings"
)

// NewWorldview builds the prompt for generating a fresh setting from keywords.
// The response is plain text, not JSON.
func NewWorldview(keywords string) string {
	var b strings.Builder
	b.WriteString(`당신은 상상력이 매우 풍부한 세계관 기획 전문가입니다.
사용자가 제공한 '핵심 키워드'를 바탕으로, 독창적이고 흥미로운 가상의 세계관의 기본 설정을 구체적으로 작성해주세요.

**매우 중요한 규칙:**
1.  아래 '출력 항목 예시'는 **어떤 내용을 채워야 하는지에 대한 안내일 뿐, 예시 단어를 그대로 사용하는것은 권장하지 않습니다.** 당신만의 고유한 이름과 설정을 창조해주세요.
2.  결과는 반드시 '출력 항목 예시'에 명시된 5가지 항목(세계의 이름과 분위기, 핵심 설정, 주요 역사, 지배 세력, 주요 갈등)을 모두 포함해야 합니다.
3.  다른 어떤 설명도 추가하지 말고, 생성된 세계관 설정 텍스트 본문만 응답해야 합니다.

---
[핵심 키워드]
`)
	fmt.Fprintf(&b, "%q\n", keywords)
	b.WriteString(`---
[출력 항목 예시 (이 단어들을 쓰지 마세요!)]
- **세계의 이름과 전반적인 분위기:** (예: 잿빛 하늘의 제국, 아르카디아)
- **핵심 설정과 독특한 시스템:** (예: 마법이 증기기관으로 대체된 시대)
- **주요 역사적 사건:** (예: 대마법 전쟁, 신들의 침묵)
- **지배적인 종족 또는 세력:** (예: 고대 용족의 후예들, 기계 신을 숭배하는 교단)
- **현재 시대의 주요 갈등 요소:** (예: 고갈되어 가는 마나 자원을 둘러싼 대립)
---

[출력]
(당신이 창조한 새로운 세계관 설정)
`)
	return b.String()
}

// EditWorldview builds the prompt for revising an existing setting text. The
// model must return the complete revised text, not a diff.
func EditWorldview(keywords, existingContent string) string {
	var b strings.Builder
	b.WriteString(`당신은 세계관 설정의 일관성을 유지하는 전문 편집자입니다.
아래에 제공된 '기존 세계관 설정'을 바탕으로, 사용자의 '요청사항'을 반영하여 설정을 수정하거나 확장하는 임무를 받았습니다.

**매우 중요한 규칙:**
1.  **'기존 세계관 설정'의 구조, 문체, 핵심 용어 등을 반드시 유지해야 합니다.** 이는 이야기의 근간이므로, 절대 무시해서는 안 됩니다.
2.  사용자의 '요청사항'은 기존 설정에 자연스럽게 녹아들도록 추가하거나, 기존 내용의 일부를 논리적으로 수정하는 방식으로 반영해야 합니다.
3.  만약 요청사항이 비어 있거나 "살을 붙여줘" 또는 "더 자세하게"와 같이 추상적이라면, 기존 설정의 각 항목을 더 구체적인 예시와 상세한 묘사로 채워 넣어 전체적인 깊이를 더해야 합니다.
4.  최종 결과물은 **완성된 전체 세계관 텍스트**여야 합니다. 추가된 부분만 응답해서는 안 됩니다.

---
[기존 세계관 설정]
`)
	b.WriteString(existingContent)
	b.WriteString("\n---\n[사용자 요청사항]\n")
	fmt.Fprintf(&b, "%q\n", keywords)
	b.WriteString(`---

[출력]
(수정/확장된 전체 세계관 텍스트)
`)
	return b.String()
}

// EditWorldviewCards builds the prompt for revising worldview sub-setting
// cards. relatedCardsJSON is the selected cards serialized as indented JSON.
func EditWorldviewCards(p EditWorldviewCardsParams) string {
	editingInstruction := fmt.Sprintf(
		"**오직 '%s' 설정 카드만 수정**해야 합니다. 컨텍스트로 제공된 다른 카드 정보는 이야기의 일관성을 위한 **참고 자료로만 활용**하고, 절대로 그들의 내용을 수정해서는 안 됩니다.",
		p.EditedCardTitle)
	if p.EditRelated {
		editingInstruction = fmt.Sprintf(
			"사용자의 요청에 따라 설정 정보를 수정할 때, **'%s'** 카드를 중심으로 내용을 변경해주세요. 한 카드의 수정이 다른 카드의 서사에 영향을 준다면, 컨텍스트로 제공된 관련된 다른 카드의 정보도 자연스럽게 수정해야 합니다.",
			p.EditedCardTitle)
	}

	levelInstruction := ""
	if p.MainWorldview != "" {
		switch p.WorldviewLevel {
		case LevelHigh:
			levelInstruction = "\n- **메인 세계관 반영(높음):** 수정 내용은 메인 세계관의 핵심 설정과 직접적으로 연결되어야 합니다."
		case LevelMedium:
			levelInstruction = "\n- **메인 세계관 반영(중간):** 수정 내용은 메인 세계관의 사회, 문화적 배경에 자연스럽게 녹아들어야 합니다."
		case LevelLow:
			levelInstruction = "\n- **메인 세계관 반영(낮음):** 캐릭터의 개인 서사처럼, 메인 세계관과 무관한 독립적인 설정으로 만드세요."
		default:
			levelInstruction = "\n- **메인 세계관 반영(최소):** 메인 세계관의 고유 설정(지명, 인물)은 피하고, 장르와 분위기만 참고하세요."
		}
	}

	var b strings.Builder
	b.WriteString(`당신은 세계관 설정의 일관성을 유지하는 전문 편집자입니다.
아래에 제공된 '메인 세계관', '관련 설정 카드', '사용자 요청사항'을 바탕으로 **세계관 설정 카드**의 내용을 수정해주세요.

**매우 중요한 규칙:**
`)
	fmt.Fprintf(&b, "1. %s\n", editingInstruction)
	b.WriteString("2. 카드의 핵심 설정이 변경되면, 제목과 내용이 서로 논리적 일관성을 유지하도록 함께 수정해야 합니다.\n")
	fmt.Fprintf(&b, "3. 절대로 기존 카드의 'id'는 변경해서는 안 됩니다.%s\n", levelInstruction)
	b.WriteString(`4. 최종 결과는 반드시 아래 명시된 JSON 형식으로만 반환해야 합니다. 다른 어떤 설명도 추가하지 마세요.

---
[메인 세계관 정보]
`)
	b.WriteString(p.MainWorldview)
	b.WriteString("\n---\n[관련 설정 카드 정보 (JSON)]\n")
	b.WriteString(p.RelatedCardsJSON)
	b.WriteString("\n---\n[사용자 요청사항]\n")
	fmt.Fprintf(&b, "%q\n", p.PromptText)
	b.WriteString(`---

[출력 JSON 형식]
{
  "updated_cards": [
    {
      "id": "수정된 카드의 id",
      "title": "새로운 제목 (변경 시)",
      "content": "새로운 내용 (순수 텍스트)"
    }
  ]
}
`)
	return b.String()
}

// EditWorldviewCardsParams carries the context for EditWorldviewCards.
type EditWorldviewCardsParams struct {
	EditedCardTitle  string
	EditRelated      bool
	MainWorldview    string
	RelatedCardsJSON string
	PromptText       string
	WorldviewLevel   Level
}
