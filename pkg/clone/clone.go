// Package clone plans the materialization of a sample-project payload into a
// brand-new project. Planning is pure: it allocates fresh ids, rewrites
// internal references, and reports what it dropped; persistence happens in the
// service layer inside one transaction.
package clone

import (
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/ident"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

// SampleCard is one card in the sample payload. ID is the payload's own
// identifier; relationships reference cards by it, or by name when absent.
type SampleCard struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       *string  `json:"description"`
	Goal              []string `json:"goal"`
	Personality       []string `json:"personality"`
	Abilities         []string `json:"abilities"`
	Quote             []string `json:"quote"`
	IntroductionStory *string  `json:"introduction_story"`
}

// SampleGroup is one character group in the sample payload.
type SampleGroup struct {
	Name  string       `json:"name"`
	Cards []SampleCard `json:"cards"`
}

// SampleWorldviewCard is one lore card in the sample payload.
type SampleWorldviewCard struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// SampleWorldviewGroup is one lore group in the sample payload.
type SampleWorldviewGroup struct {
	Name  string                `json:"name"`
	Cards []SampleWorldviewCard `json:"worldview_cards"`
}

// SampleRelationship references cards by payload id or name.
type SampleRelationship struct {
	SourceCharacterID string  `json:"source_character_id"`
	TargetCharacterID string  `json:"target_character_id"`
	Type              string  `json:"type"`
	Description       *string `json:"description"`
}

// SamplePlotPoint is one plot point in the sample payload.
type SamplePlotPoint struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// SampleScenario is the sample payload's scenario, when present.
type SampleScenario struct {
	Title      string            `json:"title"`
	Summary    *string           `json:"summary"`
	Themes     []string          `json:"themes"`
	Synopsis   *string           `json:"synopsis"`
	PlotPoints []SamplePlotPoint `json:"plot_points"`
}

// SamplePayload is the externally supplied sample project.
type SamplePayload struct {
	Name            string                 `json:"name"`
	Groups          []SampleGroup          `json:"groups"`
	Worldview       *string                `json:"worldview"`
	WorldviewGroups []SampleWorldviewGroup `json:"worldview_groups"`
	Relationships   []SampleRelationship   `json:"relationships"`
	Scenario        *SampleScenario        `json:"scenario"`
}

// Plan is the set of rows to insert for the cloned project, all carrying
// freshly generated ids.
type Plan struct {
	Project         models.Project
	Groups          []models.Group
	Cards           []models.Card
	Worldview       *string
	WorldviewGroups []models.WorldviewGroup
	WorldviewCards  []models.WorldviewCard
	Relationships   []models.Relationship
	Scenario        models.Scenario
	PlotPoints      []models.PlotPoint
	// DroppedRelationships counts payload relationships whose endpoints did
	// not both resolve. Dropping them is intentional: a dangling reference
	// must never be cloned into the new project.
	DroppedRelationships int
}

// Build plans a clone of the payload. All ids share one timestamp namespace
// so a single clone's rows are recognizably related.
func Build(payload SamplePayload) Plan {
	ns := ident.Namespace()
	seq := 0
	nextID := func(prefix string) string {
		seq++
		return ident.InNamespace(prefix, ns, seq)
	}

	plan := Plan{
		Project: models.Project{
			ID:   nextID("project"),
			Name: payload.Name,
		},
		Worldview: payload.Worldview,
	}

	// First pass: groups and cards, recording payload-id (or name) -> new id
	// so relationships can be rewritten afterwards.
	idMap := make(map[string]string)
	hasUncategorized := false
	for _, g := range payload.Groups {
		group := models.Group{
			ID:        nextID("group"),
			ProjectID: plan.Project.ID,
			Name:      g.Name,
		}
		if group.IsUncategorized() {
			hasUncategorized = true
		}
		plan.Groups = append(plan.Groups, group)

		for i, c := range g.Cards {
			ord := i
			card := models.Card{
				ID:                nextID("card"),
				GroupID:           group.ID,
				Name:              c.Name,
				Description:       c.Description,
				Goal:              c.Goal,
				Personality:       c.Personality,
				Abilities:         c.Abilities,
				Quote:             c.Quote,
				IntroductionStory: c.IntroductionStory,
				Ordering:          &ord,
			}
			key := c.ID
			if key == "" {
				key = c.Name
			}
			idMap[key] = card.ID
			plan.Cards = append(plan.Cards, card)
		}
	}
	if !hasUncategorized {
		plan.Groups = append(plan.Groups, models.Group{
			ID:        nextID("group"),
			ProjectID: plan.Project.ID,
			Name:      models.UncategorizedGroupName,
		})
	}

	for _, g := range payload.WorldviewGroups {
		group := models.WorldviewGroup{
			ID:        nextID("wv-group"),
			ProjectID: plan.Project.ID,
			Name:      g.Name,
		}
		plan.WorldviewGroups = append(plan.WorldviewGroups, group)
		for i, c := range g.Cards {
			ord := i
			plan.WorldviewCards = append(plan.WorldviewCards, models.WorldviewCard{
				ID:       nextID("wv-card"),
				GroupID:  group.ID,
				Title:    c.Title,
				Content:  c.Content,
				Ordering: &ord,
			})
		}
	}

	// Second pass: relationships resolve through the id map; both endpoints
	// must resolve or the relationship is dropped.
	for _, rel := range payload.Relationships {
		source, okS := idMap[rel.SourceCharacterID]
		target, okT := idMap[rel.TargetCharacterID]
		if !okS || !okT {
			plan.DroppedRelationships++
			continue
		}
		plan.Relationships = append(plan.Relationships, models.Relationship{
			ID:                nextID("rel"),
			ProjectID:         plan.Project.ID,
			SourceCharacterID: source,
			TargetCharacterID: target,
			Type:              rel.Type,
			Description:       rel.Description,
			PhaseOrder:        1,
		})
	}

	plan.Scenario = models.Scenario{
		ID:        nextID("scenario"),
		ProjectID: plan.Project.ID,
		Title:     models.DefaultScenarioTitle,
	}
	if payload.Scenario != nil {
		if payload.Scenario.Title != "" {
			plan.Scenario.Title = payload.Scenario.Title
		}
		plan.Scenario.Summary = payload.Scenario.Summary
		plan.Scenario.Themes = payload.Scenario.Themes
		plan.Scenario.Synopsis = payload.Scenario.Synopsis
		for i, p := range payload.Scenario.PlotPoints {
			ord := i
			plan.PlotPoints = append(plan.PlotPoints, models.PlotPoint{
				ID:         nextID("plot"),
				ScenarioID: plan.Scenario.ID,
				Title:      p.Title,
				Content:    p.Content,
				Ordering:   &ord,
			})
		}
	}

	return plan
}
