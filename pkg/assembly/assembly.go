// Package assembly converts the normalized entity rows into the nested shape
// clients consume. Everything here is pure; callers fetch the rows and decide
// what to do with the suggested counter backfills.
package assembly

import (
	"sort"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

// Input carries one project's rows as loaded from storage.
type Input struct {
	Project         *models.Project
	Groups          []models.Group
	Cards           []models.Card // any order; grouped and sorted here
	Worldview       *models.Worldview
	WorldviewGroups []models.WorldviewGroup
	WorldviewCards  []models.WorldviewCard
	Relationships   []models.Relationship
	Scenarios       []models.Scenario
	PlotPoints      map[string][]models.PlotPoint // keyed by scenario id
	Blocks          []models.ManuscriptBlock
}

// GroupView is a group with its cards nested in ordering order.
type GroupView struct {
	models.Group
	Cards []models.Card `json:"cards"`
}

// WorldviewGroupView is a worldview group with its cards nested.
type WorldviewGroupView struct {
	models.WorldviewGroup
	WorldviewCards []models.WorldviewCard `json:"worldview_cards"`
}

// ScenarioView is a scenario with its plot points nested.
type ScenarioView struct {
	models.Scenario
	PlotPoints []models.PlotPoint `json:"plot_points"`
}

// ProjectView is the assembled response shape.
type ProjectView struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	HasPassword      bool                     `json:"has_password"`
	Groups           []GroupView              `json:"groups"`
	Worldview        models.WorldviewContent  `json:"worldview"`
	WorldviewGroups  []WorldviewGroupView     `json:"worldview_groups"`
	Relationships    []models.Relationship    `json:"relationships"`
	Scenarios        []ScenarioView           `json:"scenarios"`
	ManuscriptBlocks []models.ManuscriptBlock `json:"manuscript_blocks"`
}

// CountBackfill is a manuscript block whose derived counters were null and
// have been computed during assembly. Persisting them is a read-time
// convenience, not a requirement.
type CountBackfill struct {
	BlockID   string
	CharCount int
	WordCount int
}

// Assemble builds the nested project view. Groups come out with the
// uncategorized group last and the rest alphabetical; every child collection
// is sorted by its ordering column (nils last).
func Assemble(in Input) (*ProjectView, []CountBackfill) {
	view := &ProjectView{
		ID:          in.Project.ID,
		Name:        in.Project.Name,
		HasPassword: in.Project.HasPassword(),
	}

	cardsByGroup := make(map[string][]models.Card, len(in.Groups))
	for _, c := range in.Cards {
		cardsByGroup[c.GroupID] = append(cardsByGroup[c.GroupID], c)
	}

	groups := make([]models.Group, len(in.Groups))
	copy(groups, in.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		gi, gj := groups[i], groups[j]
		if gi.IsUncategorized() != gj.IsUncategorized() {
			return gj.IsUncategorized()
		}
		return gi.Name < gj.Name
	})

	view.Groups = make([]GroupView, 0, len(groups))
	for _, g := range groups {
		cards := cardsByGroup[g.ID]
		sortByOrdering(cards, func(c models.Card) *int { return c.Ordering })
		if cards == nil {
			cards = []models.Card{}
		}
		view.Groups = append(view.Groups, GroupView{Group: g, Cards: cards})
	}

	if in.Worldview != nil {
		view.Worldview = models.DecodeWorldviewContent(in.Worldview.Content)
	} else {
		view.Worldview = models.DecodeWorldviewContent(nil)
	}

	wvCardsByGroup := make(map[string][]models.WorldviewCard, len(in.WorldviewGroups))
	for _, c := range in.WorldviewCards {
		wvCardsByGroup[c.GroupID] = append(wvCardsByGroup[c.GroupID], c)
	}

	wvGroups := make([]models.WorldviewGroup, len(in.WorldviewGroups))
	copy(wvGroups, in.WorldviewGroups)
	sort.SliceStable(wvGroups, func(i, j int) bool { return wvGroups[i].Name < wvGroups[j].Name })

	view.WorldviewGroups = make([]WorldviewGroupView, 0, len(wvGroups))
	for _, g := range wvGroups {
		cards := wvCardsByGroup[g.ID]
		sortByOrdering(cards, func(c models.WorldviewCard) *int { return c.Ordering })
		if cards == nil {
			cards = []models.WorldviewCard{}
		}
		view.WorldviewGroups = append(view.WorldviewGroups, WorldviewGroupView{WorldviewGroup: g, WorldviewCards: cards})
	}

	view.Relationships = in.Relationships
	if view.Relationships == nil {
		view.Relationships = []models.Relationship{}
	}

	view.Scenarios = make([]ScenarioView, 0, len(in.Scenarios))
	for _, s := range in.Scenarios {
		points := in.PlotPoints[s.ID]
		sortByOrdering(points, func(p models.PlotPoint) *int { return p.Ordering })
		if points == nil {
			points = []models.PlotPoint{}
		}
		view.Scenarios = append(view.Scenarios, ScenarioView{Scenario: s, PlotPoints: points})
	}

	blocks := make([]models.ManuscriptBlock, len(in.Blocks))
	copy(blocks, in.Blocks)
	sortByOrdering(blocks, func(b models.ManuscriptBlock) *int { return b.Ordering })

	var backfills []CountBackfill
	for i := range blocks {
		if blocks[i].EnsureCounts() {
			backfills = append(backfills, CountBackfill{
				BlockID:   blocks[i].ID,
				CharCount: *blocks[i].CharCount,
				WordCount: *blocks[i].WordCount,
			})
		}
	}
	view.ManuscriptBlocks = blocks

	return view, backfills
}

// sortByOrdering sorts items by their ordering pointer, nils last, stable.
func sortByOrdering[T any](items []T, key func(T) *int) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
}
