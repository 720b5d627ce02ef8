package prompts

import (
	"fmt"
	"strings"
)

// PlotDraftParams carries the gathered context for a full plot draft.
type PlotDraftParams struct {
	WorldviewContent string // empty means undefined
	Themes           []string
	Characters       []ContextCard
	Summary          string
	PlotPointCount   int
}

// PlotDraft builds the prompt for a three-act plot outline with exactly
// PlotPointCount points. The response is a plot_points JSON envelope.
func PlotDraft(p PlotDraftParams) string {
	worldview := p.WorldviewContent
	if worldview == "" {
		worldview = "정의되지 않음"
	}
	worldviewContext := fmt.Sprintf("[메인 세계관]\n%s", worldview)

	var themesContext string
	if len(p.Themes) > 0 {
		themesContext = fmt.Sprintf("[핵심 테마]\n%s", strings.Join(p.Themes, ", "))
	}

	lines := make([]string, 0, len(p.Characters))
	for _, c := range p.Characters {
		lines = append(lines, fmt.Sprintf("- %s: %s", c.Name, c.Description))
	}
	charactersContext := "[주요 등장인물]\n" + strings.Join(lines, "\n")

	var conceptContext string
	if strings.TrimSpace(p.Summary) != "" {
		conceptContext = fmt.Sprintf("[이야기 핵심 컨셉]\n%s", p.Summary)
	}

	var b strings.Builder
	b.WriteString(`당신은 3막 구조에 능숙한 전문 시나리오 작가입니다.
아래에 제공된 모든 정보를 종합하여, 흥미로운 이야기의 흐름을 가진 플롯 포인트 초안을 생성해주세요.

`)
	b.WriteString(worldviewContext)
	b.WriteString("\n")
	if themesContext != "" {
		b.WriteString(themesContext)
		b.WriteString("\n")
	}
	b.WriteString(charactersContext)
	b.WriteString("\n")
	if conceptContext != "" {
		b.WriteString(conceptContext)
		b.WriteString("\n")
	}
	b.WriteString(`
**매우 중요한 규칙:**
1.  **HTML 태그는 절대 사용하지 말고, 순수한 텍스트로만 응답해야 합니다.**
2.  이야기는 **발단-전개-위기-절정-결말**의 3막 구조를 따라야 합니다.
`)
	fmt.Fprintf(&b, "3.  플롯은 **정확히 %d개**의 포인트로 나누어주세요.\n", p.PlotPointCount)
	b.WriteString(`4.  결과는 반드시 아래 명시된 JSON 스키마를 따르는 JSON 객체로만 응답해야 합니다.

**출력 JSON 스키마:**
{
  "plot_points": [
    {
      "title": "플롯 포인트의 제목",
      "content": "해당 플롯 포인트에서 발생하는 사건에 대한 2~3문장의 구체적인 설명."
    }
  ]
}
`)
	return b.String()
}

// EditPlotPointParams carries the gathered context for a single-point edit.
// FullStoryContext is the numbered "title: content" listing of every point in
// the scenario, in order.
type EditPlotPointParams struct {
	Summary          string
	Characters       []ContextCard
	FullStoryContext string
	PointTitle       string
	PointContent     string
	UserPrompt       string
}

// EditPlotPoint builds the prompt for revising one plot point while keeping
// the surrounding story consistent. The response is a {title, content} JSON
// object.
func EditPlotPoint(p EditPlotPointParams) string {
	lines := make([]string, 0, len(p.Characters))
	for _, c := range p.Characters {
		lines = append(lines, fmt.Sprintf("- %s: %s", c.Name, c.Description))
	}

	var conceptContext string
	if strings.TrimSpace(p.Summary) != "" {
		conceptContext = fmt.Sprintf("[이야기 핵심 컨셉]\n%s", p.Summary)
	}

	var b strings.Builder
	b.WriteString(`당신은 이야기의 전체적인 일관성을 유지하며 특정 부분을 섬세하게 수정하는 전문 스토리 편집자입니다.
아래 제공된 '전체 스토리 흐름'을 참고하여, '수정 대상 플롯 포인트'를 사용자의 '수정 요청사항'에 맞게 수정해주세요.

`)
	b.WriteString(conceptContext)
	b.WriteString("\n\n[주요 등장인물]\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n[전체 스토리 흐름]\n")
	b.WriteString(p.FullStoryContext)
	b.WriteString("\n---\n[수정 대상 플롯 포인트]\n")
	fmt.Fprintf(&b, "- 제목: %s\n", p.PointTitle)
	fmt.Fprintf(&b, "- 내용: %s\n", p.PointContent)
	b.WriteString("\n[사용자 수정 요청사항]\n")
	fmt.Fprintf(&b, "%q\n", p.UserPrompt)
	b.WriteString(`---
**매우 중요한 규칙:**
1.  **오직 '수정 대상 플롯 포인트'의 제목과 내용만** 수정해야 합니다.
2.  수정된 내용은 '전체 스토리 흐름'의 맥락과 자연스럽게 연결되어야 합니다.
3.  결과는 반드시 아래 명시된 JSON 스키마 형식으로만 응답해야 합니다.

**출력 JSON 스키마:**
{
  "title": "새롭게 수정된 플롯 제목",
  "content": "새롭게 수정된 플롯 내용 (2~3 문장)"
}
`)
	return b.String()
}
