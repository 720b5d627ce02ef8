package clone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

func samplePayload() SamplePayload {
	return SamplePayload{
		Name: "샘플 프로젝트",
		Groups: []SampleGroup{
			{
				Name: "주연",
				Cards: []SampleCard{
					{ID: "char-1", Name: "엘라라"},
					{ID: "char-2", Name: "카엘"},
				},
			},
		},
		Relationships: []SampleRelationship{
			{SourceCharacterID: "char-1", TargetCharacterID: "char-2", Type: "라이벌"},
		},
	}
}

func TestBuild_RemapsCardIDs(t *testing.T) {
	plan := Build(samplePayload())

	require.Len(t, plan.Cards, 2)
	require.Len(t, plan.Relationships, 1)

	rel := plan.Relationships[0]
	assert.Equal(t, plan.Cards[0].ID, rel.SourceCharacterID)
	assert.Equal(t, plan.Cards[1].ID, rel.TargetCharacterID)
	assert.NotEqual(t, "char-1", rel.SourceCharacterID)
	assert.Equal(t, 1, rel.PhaseOrder)
	assert.Zero(t, plan.DroppedRelationships)
}

func TestBuild_DropsDanglingRelationships(t *testing.T) {
	payload := samplePayload()
	payload.Relationships = append(payload.Relationships,
		SampleRelationship{SourceCharacterID: "char-1", TargetCharacterID: "ghost", Type: "동맹"})

	plan := Build(payload)

	assert.Len(t, plan.Relationships, 1)
	assert.Equal(t, 1, plan.DroppedRelationships)
}

func TestBuild_ResolvesCardsByNameWhenIDMissing(t *testing.T) {
	payload := SamplePayload{
		Name: "p",
		Groups: []SampleGroup{
			{Name: "g", Cards: []SampleCard{{Name: "이름뿐"}, {Name: "상대"}}},
		},
		Relationships: []SampleRelationship{
			{SourceCharacterID: "이름뿐", TargetCharacterID: "상대", Type: "친구"},
		},
	}

	plan := Build(payload)
	require.Len(t, plan.Relationships, 1)
	assert.Zero(t, plan.DroppedRelationships)
}

func TestBuild_EnsuresUncategorizedGroup(t *testing.T) {
	plan := Build(samplePayload())

	names := make([]string, 0, len(plan.Groups))
	for _, g := range plan.Groups {
		names = append(names, g.Name)
	}
	assert.Contains(t, names, models.UncategorizedGroupName)
}

func TestBuild_KeepsExistingUncategorizedGroup(t *testing.T) {
	payload := samplePayload()
	payload.Groups = append(payload.Groups, SampleGroup{Name: models.UncategorizedGroupName})

	plan := Build(payload)

	count := 0
	for _, g := range plan.Groups {
		if g.IsUncategorized() {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBuild_DefaultScenarioWhenPayloadHasNone(t *testing.T) {
	plan := Build(samplePayload())

	assert.Equal(t, models.DefaultScenarioTitle, plan.Scenario.Title)
	assert.Empty(t, plan.PlotPoints)
}

func TestBuild_ScenarioWithPlotPoints(t *testing.T) {
	content := "왕국의 몰락"
	payload := samplePayload()
	payload.Scenario = &SampleScenario{
		Title:  "본편",
		Themes: []string{"복수"},
		PlotPoints: []SamplePlotPoint{
			{Title: "1막", Content: &content},
			{Title: "2막"},
		},
	}

	plan := Build(payload)

	assert.Equal(t, "본편", plan.Scenario.Title)
	require.Len(t, plan.PlotPoints, 2)
	assert.Equal(t, plan.Scenario.ID, plan.PlotPoints[0].ScenarioID)
	assert.Equal(t, 0, *plan.PlotPoints[0].Ordering)
	assert.Equal(t, 1, *plan.PlotPoints[1].Ordering)
}

func TestBuild_EmptyScenarioTitleFallsBack(t *testing.T) {
	payload := samplePayload()
	payload.Scenario = &SampleScenario{}

	plan := Build(payload)
	assert.Equal(t, models.DefaultScenarioTitle, plan.Scenario.Title)
}

func TestBuild_AllIDsAreFresh(t *testing.T) {
	plan := Build(samplePayload())

	seen := map[string]struct{}{plan.Project.ID: {}}
	check := func(id string) {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	for _, g := range plan.Groups {
		check(g.ID)
	}
	for _, c := range plan.Cards {
		check(c.ID)
	}
	for _, r := range plan.Relationships {
		check(r.ID)
	}
	check(plan.Scenario.ID)
}
