package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func TestAssemble_GroupSortPutsUncategorizedLast(t *testing.T) {
	view, _ := Assemble(Input{
		Project: &models.Project{ID: "p1", Name: "테스트"},
		Groups: []models.Group{
			{ID: "g1", Name: models.UncategorizedGroupName},
			{ID: "g2", Name: "조연"},
			{ID: "g3", Name: "주연"},
		},
	})

	require.Len(t, view.Groups, 3)
	assert.Equal(t, "조연", view.Groups[0].Name)
	assert.Equal(t, "주연", view.Groups[1].Name)
	assert.Equal(t, models.UncategorizedGroupName, view.Groups[2].Name)
}

func TestAssemble_CardsSortedByOrderingNilsLast(t *testing.T) {
	view, _ := Assemble(Input{
		Project: &models.Project{ID: "p1"},
		Groups:  []models.Group{{ID: "g1", Name: "주연"}},
		Cards: []models.Card{
			{ID: "c-legacy", GroupID: "g1"},
			{ID: "c1", GroupID: "g1", Ordering: intPtr(1)},
			{ID: "c0", GroupID: "g1", Ordering: intPtr(0)},
		},
	})

	require.Len(t, view.Groups, 1)
	cards := view.Groups[0].Cards
	require.Len(t, cards, 3)
	assert.Equal(t, "c0", cards[0].ID)
	assert.Equal(t, "c1", cards[1].ID)
	assert.Equal(t, "c-legacy", cards[2].ID)
}

func TestAssemble_EmptyCollectionsNotNil(t *testing.T) {
	view, _ := Assemble(Input{
		Project: &models.Project{ID: "p1"},
		Groups:  []models.Group{{ID: "g1", Name: "빈 그룹"}},
	})

	assert.NotNil(t, view.Groups[0].Cards)
	assert.NotNil(t, view.WorldviewGroups)
	assert.NotNil(t, view.Relationships)
	assert.NotNil(t, view.Scenarios)
}

func TestAssemble_WorldviewDecoded(t *testing.T) {
	content := `{"logline":"로그라인","genre":"판타지","rules":["규칙1"]}`
	view, _ := Assemble(Input{
		Project:   &models.Project{ID: "p1"},
		Worldview: &models.Worldview{ProjectID: "p1", Content: &content},
	})

	assert.Equal(t, "로그라인", view.Worldview.Logline)
	assert.Equal(t, []string{"규칙1"}, view.Worldview.Rules)
}

func TestAssemble_MissingWorldviewIsEmptyContent(t *testing.T) {
	view, _ := Assemble(Input{Project: &models.Project{ID: "p1"}})

	assert.Empty(t, view.Worldview.Logline)
	assert.Equal(t, []string{}, view.Worldview.Rules)
}

func TestAssemble_PlotPointsNestedPerScenario(t *testing.T) {
	view, _ := Assemble(Input{
		Project:   &models.Project{ID: "p1"},
		Scenarios: []models.Scenario{{ID: "s1", Title: "본편"}},
		PlotPoints: map[string][]models.PlotPoint{
			"s1": {
				{ID: "pp2", ScenarioID: "s1", Ordering: intPtr(1)},
				{ID: "pp1", ScenarioID: "s1", Ordering: intPtr(0)},
			},
		},
	})

	require.Len(t, view.Scenarios, 1)
	points := view.Scenarios[0].PlotPoints
	require.Len(t, points, 2)
	assert.Equal(t, "pp1", points[0].ID)
	assert.Equal(t, "pp2", points[1].ID)
}

func TestAssemble_BackfillsMissingBlockCounts(t *testing.T) {
	chars, words := 5, 1
	view, backfills := Assemble(Input{
		Project: &models.Project{ID: "p1"},
		Blocks: []models.ManuscriptBlock{
			{ID: "b1", Content: strPtr("두 단어"), Ordering: intPtr(0)},
			{ID: "b2", Content: strPtr("채워짐"), CharCount: &chars, WordCount: &words, Ordering: intPtr(1)},
		},
	})

	require.Len(t, backfills, 1)
	assert.Equal(t, "b1", backfills[0].BlockID)
	assert.Equal(t, 4, backfills[0].CharCount)
	assert.Equal(t, 2, backfills[0].WordCount)

	// The response carries computed counters either way.
	require.Len(t, view.ManuscriptBlocks, 2)
	assert.Equal(t, 4, *view.ManuscriptBlocks[0].CharCount)
	assert.Equal(t, 5, *view.ManuscriptBlocks[1].CharCount)
}

func TestAssemble_HasPassword(t *testing.T) {
	hash := "$2a$10$hash"
	view, _ := Assemble(Input{Project: &models.Project{ID: "p1", PasswordHash: &hash}})
	assert.True(t, view.HasPassword)
}
