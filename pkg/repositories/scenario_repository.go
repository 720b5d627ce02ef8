package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/database"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/ordering"
)

// ScenarioRepository defines data access for scenarios and plot points.
type ScenarioRepository interface {
	Create(ctx context.Context, scenario *models.Scenario) error
	Get(ctx context.Context, projectID, scenarioID string) (*models.Scenario, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Scenario, error)
	Update(ctx context.Context, projectID, scenarioID string, update models.ScenarioUpdate) error

	// CreatePlotPoint appends the point at the end of its scenario.
	CreatePlotPoint(ctx context.Context, point *models.PlotPoint) error
	GetPlotPointScoped(ctx context.Context, projectID, plotPointID string) (*models.PlotPoint, error)
	ListPlotPoints(ctx context.Context, scenarioID string) ([]models.PlotPoint, error)
	UpdatePlotPoint(ctx context.Context, projectID, plotPointID string, update models.PlotPointUpdate) error
	// DeletePlotPoint removes the point and re-indexes its remaining siblings.
	DeletePlotPoint(ctx context.Context, projectID, plotPointID string) error
	ReorderPlotPoints(ctx context.Context, projectID, scenarioID string, orderedIDs []string) error
	// ReplacePlotPoints deletes every point in the scenario and inserts the
	// given ones in slice order.
	ReplacePlotPoints(ctx context.Context, scenarioID string, points []models.PlotPoint) error
}

type scenarioRepository struct {
	db *database.DB
}

// NewScenarioRepository creates a new scenario repository.
func NewScenarioRepository(db *database.DB) ScenarioRepository {
	return &scenarioRepository{db: db}
}

func (r *scenarioRepository) Create(ctx context.Context, scenario *models.Scenario) error {
	query := `
		INSERT INTO scenarios (id, project_id, title, summary, themes, synopsis)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		scenario.ID, scenario.ProjectID, scenario.Title, scenario.Summary,
		models.EncodeStringList(scenario.Themes), scenario.Synopsis)
	if err != nil {
		return fmt.Errorf("failed to create scenario: %w", err)
	}
	return nil
}

func scanScenario(row pgx.Row) (*models.Scenario, error) {
	var s models.Scenario
	var themes *string
	err := row.Scan(&s.ID, &s.ProjectID, &s.Title, &s.Summary, &themes, &s.Synopsis)
	if err != nil {
		return nil, err
	}
	s.Themes = models.DecodeStringList(themes)
	return &s, nil
}

func (r *scenarioRepository) Get(ctx context.Context, projectID, scenarioID string) (*models.Scenario, error) {
	query := `
		SELECT id, project_id, title, summary, themes, synopsis
		FROM scenarios
		WHERE id = $1 AND project_id = $2`

	scenario, err := scanScenario(r.db.Querier(ctx).QueryRow(ctx, query, scenarioID, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return scenario, nil
}

func (r *scenarioRepository) ListByProject(ctx context.Context, projectID string) ([]models.Scenario, error) {
	query := `
		SELECT id, project_id, title, summary, themes, synopsis
		FROM scenarios
		WHERE project_id = $1`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []models.Scenario
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, *scenario)
	}
	return scenarios, rows.Err()
}

func (r *scenarioRepository) Update(ctx context.Context, projectID, scenarioID string, update models.ScenarioUpdate) error {
	setClauses := make([]string, 0, 4)
	args := make([]any, 0, 6)
	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Summary != nil {
		add("summary", *update.Summary)
	}
	if update.Themes != nil {
		add("themes", models.EncodeStringList(*update.Themes))
	}
	if update.Synopsis != nil {
		add("synopsis", *update.Synopsis)
	}
	if len(setClauses) == 0 {
		return apperrors.ErrValidation
	}

	args = append(args, scenarioID, projectID)
	query := fmt.Sprintf("UPDATE scenarios SET %s WHERE id = $%d AND project_id = $%d",
		strings.Join(setClauses, ", "), len(args)-1, len(args))

	tag, err := r.db.Querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const plotPointColumns = `id, scenario_id, title, content, scene_draft, ordering`

func (r *scenarioRepository) CreatePlotPoint(ctx context.Context, point *models.PlotPoint) error {
	q := r.db.Querier(ctx)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(id) FROM plot_points WHERE scenario_id = $1`, point.ScenarioID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count sibling plot points: %w", err)
	}
	point.Ordering = &count

	query := `
		INSERT INTO plot_points (id, scenario_id, title, content, scene_draft, ordering)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := q.Exec(ctx, query,
		point.ID, point.ScenarioID, point.Title, point.Content, point.SceneDraft, point.Ordering)
	if err != nil {
		return fmt.Errorf("failed to create plot point: %w", err)
	}
	return nil
}

func (r *scenarioRepository) GetPlotPointScoped(ctx context.Context, projectID, plotPointID string) (*models.PlotPoint, error) {
	query := `
		SELECT p.id, p.scenario_id, p.title, p.content, p.scene_draft, p.ordering
		FROM plot_points p
		JOIN scenarios s ON p.scenario_id = s.id
		WHERE p.id = $1 AND s.project_id = $2`

	var p models.PlotPoint
	err := r.db.Querier(ctx).QueryRow(ctx, query, plotPointID, projectID).
		Scan(&p.ID, &p.ScenarioID, &p.Title, &p.Content, &p.SceneDraft, &p.Ordering)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get plot point: %w", err)
	}
	return &p, nil
}

func (r *scenarioRepository) ListPlotPoints(ctx context.Context, scenarioID string) ([]models.PlotPoint, error) {
	query := `SELECT ` + plotPointColumns + ` FROM plot_points WHERE scenario_id = $1 ORDER BY ordering`

	rows, err := r.db.Querier(ctx).Query(ctx, query, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plot points: %w", err)
	}
	defer rows.Close()

	var points []models.PlotPoint
	for rows.Next() {
		var p models.PlotPoint
		if err := rows.Scan(&p.ID, &p.ScenarioID, &p.Title, &p.Content, &p.SceneDraft, &p.Ordering); err != nil {
			return nil, fmt.Errorf("failed to scan plot point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *scenarioRepository) UpdatePlotPoint(ctx context.Context, projectID, plotPointID string, update models.PlotPointUpdate) error {
	point, err := r.GetPlotPointScoped(ctx, projectID, plotPointID)
	if err != nil {
		return err
	}

	setClauses := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Content != nil {
		add("content", *update.Content)
	}
	if update.SceneDraft != nil {
		add("scene_draft", *update.SceneDraft)
	}
	if len(setClauses) == 0 {
		return apperrors.ErrValidation
	}

	args = append(args, point.ID)
	query := fmt.Sprintf("UPDATE plot_points SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(args))

	if _, err := r.db.Querier(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update plot point: %w", err)
	}
	return nil
}

func (r *scenarioRepository) DeletePlotPoint(ctx context.Context, projectID, plotPointID string) error {
	point, err := r.GetPlotPointScoped(ctx, projectID, plotPointID)
	if err != nil {
		return err
	}

	q := r.db.Querier(ctx)
	tag, err := q.Exec(ctx, `DELETE FROM plot_points WHERE id = $1`, point.ID)
	if err != nil {
		return fmt.Errorf("failed to delete plot point: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.reindexScenario(ctx, point.ScenarioID)
}

func (r *scenarioRepository) ReorderPlotPoints(ctx context.Context, projectID, scenarioID string, orderedIDs []string) error {
	q := r.db.Querier(ctx)

	var exists int
	err := q.QueryRow(ctx, `SELECT 1 FROM scenarios WHERE id = $1 AND project_id = $2`, scenarioID, projectID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify scenario: %w", err)
	}

	members, err := r.scenarioMembers(ctx, scenarioID)
	if err != nil {
		return err
	}
	for _, change := range ordering.Apply(orderedIDs, members) {
		if _, err := q.Exec(ctx,
			`UPDATE plot_points SET ordering = $1 WHERE id = $2 AND scenario_id = $3`,
			change.Ordering, change.ID, scenarioID); err != nil {
			return fmt.Errorf("failed to apply plot point ordering: %w", err)
		}
	}
	return nil
}

func (r *scenarioRepository) ReplacePlotPoints(ctx context.Context, scenarioID string, points []models.PlotPoint) error {
	q := r.db.Querier(ctx)

	if _, err := q.Exec(ctx, `DELETE FROM plot_points WHERE scenario_id = $1`, scenarioID); err != nil {
		return fmt.Errorf("failed to clear plot points: %w", err)
	}

	for i := range points {
		ord := i
		points[i].ScenarioID = scenarioID
		points[i].Ordering = &ord
		if _, err := q.Exec(ctx, `
			INSERT INTO plot_points (id, scenario_id, title, content, scene_draft, ordering)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			points[i].ID, scenarioID, points[i].Title, points[i].Content,
			points[i].SceneDraft, points[i].Ordering); err != nil {
			return fmt.Errorf("failed to insert plot point: %w", err)
		}
	}
	return nil
}

func (r *scenarioRepository) scenarioMembers(ctx context.Context, scenarioID string) ([]ordering.Member, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, ordering FROM plot_points WHERE scenario_id = $1 ORDER BY ordering`, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plot point orderings: %w", err)
	}
	defer rows.Close()

	var members []ordering.Member
	for rows.Next() {
		var m ordering.Member
		if err := rows.Scan(&m.ID, &m.Ordering); err != nil {
			return nil, fmt.Errorf("failed to scan plot point ordering: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *scenarioRepository) reindexScenario(ctx context.Context, scenarioID string) error {
	members, err := r.scenarioMembers(ctx, scenarioID)
	if err != nil {
		return err
	}
	q := r.db.Querier(ctx)
	for _, change := range ordering.Reindex(members) {
		if _, err := q.Exec(ctx,
			`UPDATE plot_points SET ordering = $1 WHERE id = $2 AND scenario_id = $3`,
			change.Ordering, change.ID, scenarioID); err != nil {
			return fmt.Errorf("failed to reindex plot points: %w", err)
		}
	}
	return nil
}

var _ ScenarioRepository = (*scenarioRepository)(nil)
