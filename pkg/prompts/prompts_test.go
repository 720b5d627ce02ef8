package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelHigh, ParseLevel("high"))
	assert.Equal(t, LevelMedium, ParseLevel("medium"))
	assert.Equal(t, LevelLow, ParseLevel("low"))
	assert.Equal(t, LevelNone, ParseLevel("none"))
	assert.Equal(t, LevelNone, ParseLevel(""))
	assert.Equal(t, LevelNone, ParseLevel("garbage"))
}

func TestNewWorldview_ContainsKeywords(t *testing.T) {
	prompt := NewWorldview("마법, 몰락한 제국")
	assert.Contains(t, prompt, "마법, 몰락한 제국")
}

func TestEditWorldview_ContainsBothInputs(t *testing.T) {
	prompt := EditWorldview("더 어둡게", "기존 설정 전문")
	assert.Contains(t, prompt, "더 어둡게")
	assert.Contains(t, prompt, "기존 설정 전문")
}

func TestGenerateCharacter_RequestsJSONWithQuotes(t *testing.T) {
	prompt := GenerateCharacter(GenerateCharacterParams{
		Keywords:         "냉정한 기사",
		WorldviewContext: "마법이 금지된 제국",
		WorldviewLevel:   LevelHigh,
		WorldviewCards:   []ContextCard{{Name: "금지된 탑", Description: "마법사들의 감옥"}},
	})

	assert.Contains(t, prompt, "냉정한 기사")
	assert.Contains(t, prompt, "마법이 금지된 제국")
	assert.Contains(t, prompt, "금지된 탑")
	assert.Contains(t, prompt, "introduction_story")
	assert.Contains(t, prompt, "quote")
}

func TestEditCharacterCards_RelatedToggleChangesScope(t *testing.T) {
	params := EditCharacterCardsParams{
		EditedCardName:     "엘라라",
		ProjectContextJSON: "{}",
		PromptText:         "더 용감하게",
	}

	solo := EditCharacterCards(params)
	params.EditRelated = true
	related := EditCharacterCards(params)

	assert.Contains(t, solo, "엘라라")
	assert.NotEqual(t, solo, related)
	assert.Contains(t, solo, "updated_cards")
	assert.Contains(t, related, "updated_cards")
}

func TestPlotDraft_ExactPointCountAndFallbacks(t *testing.T) {
	prompt := PlotDraft(PlotDraftParams{
		WorldviewContent: "",
		Themes:           []string{"복수", "구원"},
		Characters:       []ContextCard{{Name: "엘라라", Description: "주인공"}},
		Summary:          "몰락한 기사의 복수극",
		PlotPointCount:   12,
	})

	assert.Contains(t, prompt, "정확히 12개")
	assert.Contains(t, prompt, "정의되지 않음")
	assert.Contains(t, prompt, "복수")
	assert.Contains(t, prompt, "엘라라")
	assert.Contains(t, prompt, "plot_points")
}

func TestSuggestRelationship_TendencyAndReverse(t *testing.T) {
	source := CharacterProfile{Name: "엘라라", Goal: []string{"복수"}, Personality: []string{"냉정함"}}
	target := CharacterProfile{Name: "카엘"}

	hostile := SuggestRelationship(SuggestRelationshipParams{
		Source: source, Target: target, Tendency: -2,
	})
	friendly := SuggestRelationship(SuggestRelationshipParams{
		Source: source, Target: target, Tendency: 2, Keyword: "혈맹",
	})

	assert.NotEqual(t, hostile, friendly)
	assert.Contains(t, friendly, "혈맹")

	withReverse := SuggestRelationship(SuggestRelationshipParams{
		Source: source, Target: target,
		Reverse: &ReverseRelationship{Type: "은인", Description: "목숨을 구해줌"},
	})
	assert.Contains(t, withReverse, "은인")
	assert.Contains(t, withReverse, "기존 관계 정보")
}

func TestHighlightNames_ListsAllNames(t *testing.T) {
	prompt := HighlightNames("엘라라", []string{"카엘", "브람"}, "엘라라가 카엘을 바라보았다.")

	assert.Contains(t, prompt, `<span class="protagonist">엘라라</span>`)
	assert.Contains(t, prompt, "카엘, 브람")
	assert.Contains(t, prompt, "엘라라가 카엘을 바라보았다.")
}

func TestHighlightNames_NoOtherNames(t *testing.T) {
	prompt := HighlightNames("엘라라", nil, "본문")
	assert.Contains(t, prompt, "없음")
}

func TestEditPlotPoint_IncludesFullStoryContext(t *testing.T) {
	prompt := EditPlotPoint(EditPlotPointParams{
		Summary:          "줄거리",
		Characters:       []ContextCard{{Name: "엘라라"}},
		FullStoryContext: "1. 시작: 왕국의 몰락\n",
		PointTitle:       "2막",
		PointContent:     "복수의 시작",
		UserPrompt:       "더 긴박하게",
	})

	assert.Contains(t, prompt, "왕국의 몰락")
	assert.Contains(t, prompt, "2막")
	assert.Contains(t, prompt, "더 긴박하게")
}
