package models

// Scenario is a project's story outline. Projects normally own exactly one,
// created alongside the project (or lazily on first access for old rows).
type Scenario struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	Title     string   `json:"title"`
	Summary   *string  `json:"summary"`
	Themes    []string `json:"themes"`
	Synopsis  *string  `json:"synopsis"`

	PlotPoints []PlotPoint `json:"plot_points"`
}

// ScenarioUpdate carries partial-update fields for a scenario.
type ScenarioUpdate struct {
	Title    *string   `json:"title"`
	Summary  *string   `json:"summary"`
	Themes   *[]string `json:"themes"`
	Synopsis *string   `json:"synopsis"`
}

// PlotPoint is one beat of a scenario, densely ordered. SceneDraft holds
// generated prose for the beat when the user has asked for it.
type PlotPoint struct {
	ID         string  `json:"id"`
	ScenarioID string  `json:"scenario_id"`
	Title      string  `json:"title"`
	Content    *string `json:"content"`
	SceneDraft *string `json:"scene_draft"`
	Ordering   *int    `json:"ordering"`
}

// PlotPointUpdate carries partial-update fields for a plot point.
type PlotPointUpdate struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	SceneDraft *string `json:"scene_draft"`
}
