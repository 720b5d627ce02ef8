package prompts

import (
	"fmt"
	"strings"
)

// HighlightNames builds the prompt that wraps character names in a text with
// HTML tags. The protagonist gets a span, every other known character a
// strong tag, and trailing Korean particles are included inside the tag.
func HighlightNames(protagonistName string, otherNames []string, textContent string) string {
	others := "없음"
	if len(otherNames) > 0 {
		others = strings.Join(otherNames, ", ")
	}

	var b strings.Builder
	b.WriteString(`당신은 텍스트에서 등장인물 이름을 정확히 찾아내는 AI 편집자입니다.

**매우 중요한 규칙:**
1.  주어진 '원본 텍스트'에서 '본인 이름'과 '타인 이름 목록'에 포함된 모든 이름을 찾으세요.
2.  이름 뒤에 한국어 조사(예: 은, 는, 이, 가, 께, 에게, 와, 과)가 붙어 있을 경우, **조사까지 포함하여 하나의 단위로** 태그를 적용해야 합니다.
    -   (좋은 예시) <span class="protagonist">엘라라가</span> 말했다.
    -   (나쁜 예시) <span class="protagonist">엘라라</span>가 말했다.
3.  찾은 이름들을 아래의 HTML 태그 규칙에 따라 정확하게 감싸주세요.
`)
	fmt.Fprintf(&b, "    -   **본인 이름:** `<span class=\"protagonist\">%s</span>`\n", protagonistName)
	b.WriteString("    -   **타인 이름:** `<strong>{other_character_name}</strong>`\n")
	b.WriteString(`4.  주어진 이름 목록에 없는 단어는 절대로 태그로 감싸서는 안 됩니다.
5.  이름이 아닌 다른 텍스트 내용은 절대 수정하지 마세요.
6.  최종 결과는 HTML 태그가 적용된 전체 텍스트여야 합니다. 다른 어떤 설명도 추가하지 마세요.

---
[본인 이름]
`)
	b.WriteString(protagonistName)
	b.WriteString("\n\n[타인 이름 목록]\n")
	b.WriteString(others)
	b.WriteString("\n\n[원본 텍스트]\n")
	b.WriteString(textContent)
	b.WriteString("\n---\n\n[출력 (HTML 태그가 적용된 텍스트)]\n")
	return b.String()
}
