package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/database"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/ident"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/repositories"
)

// StoryService manages scenarios, plot points, and the manuscript.
type StoryService interface {
	// ListScenarios returns the project's scenarios with plot points,
	// creating the default scenario when none exists yet.
	ListScenarios(ctx context.Context, projectID string) ([]models.Scenario, error)
	UpdateScenario(ctx context.Context, projectID, scenarioID string, update models.ScenarioUpdate) (*models.Scenario, error)

	CreatePlotPoint(ctx context.Context, projectID, scenarioID string, point *models.PlotPoint) (*models.PlotPoint, error)
	UpdatePlotPoint(ctx context.Context, projectID, plotPointID string, update models.PlotPointUpdate) (*models.PlotPoint, error)
	DeletePlotPoint(ctx context.Context, projectID, plotPointID string) error
	ReorderPlotPoints(ctx context.Context, projectID, scenarioID string, pointIDs []string) error

	ListBlocks(ctx context.Context, projectID string) ([]models.ManuscriptBlock, error)
	// ImportFromScenario clears all blocks and copies the scenario's plot
	// points into fresh blocks, in order.
	ImportFromScenario(ctx context.Context, projectID string) ([]models.ManuscriptBlock, error)
	ClearBlocks(ctx context.Context, projectID string) error
	UpdateBlock(ctx context.Context, projectID, blockID string, update models.ManuscriptBlockUpdate) (*models.ManuscriptBlock, error)
	DeleteBlock(ctx context.Context, projectID, blockID string) error
	ReorderBlocks(ctx context.Context, projectID string, blockIDs []string) error
}

type storyService struct {
	db          *database.DB
	scenarios   repositories.ScenarioRepository
	manuscripts repositories.ManuscriptRepository
	logger      *zap.Logger
}

// NewStoryService creates a new story service.
func NewStoryService(
	db *database.DB,
	scenarios repositories.ScenarioRepository,
	manuscripts repositories.ManuscriptRepository,
	logger *zap.Logger,
) StoryService {
	return &storyService{
		db:          db,
		scenarios:   scenarios,
		manuscripts: manuscripts,
		logger:      logger.Named("story"),
	}
}

func (s *storyService) ListScenarios(ctx context.Context, projectID string) ([]models.Scenario, error) {
	scenarios, err := s.scenarios.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if len(scenarios) == 0 {
		scenario := models.Scenario{
			ID:        ident.New("scenario"),
			ProjectID: projectID,
			Title:     models.DefaultScenarioTitle,
		}
		err := s.db.RunInTx(ctx, func(ctx context.Context) error {
			return s.scenarios.Create(ctx, &scenario)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create default scenario: %w", err)
		}
		scenarios = []models.Scenario{scenario}
	}

	for i := range scenarios {
		points, err := s.scenarios.ListPlotPoints(ctx, scenarios[i].ID)
		if err != nil {
			return nil, err
		}
		if points == nil {
			points = []models.PlotPoint{}
		}
		scenarios[i].PlotPoints = points
	}
	return scenarios, nil
}

func (s *storyService) UpdateScenario(ctx context.Context, projectID, scenarioID string, update models.ScenarioUpdate) (*models.Scenario, error) {
	if err := s.scenarios.Update(ctx, projectID, scenarioID, update); err != nil {
		return nil, err
	}
	scenario, err := s.scenarios.Get(ctx, projectID, scenarioID)
	if err != nil {
		return nil, err
	}
	points, err := s.scenarios.ListPlotPoints(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	scenario.PlotPoints = points
	return scenario, nil
}

func (s *storyService) CreatePlotPoint(ctx context.Context, projectID, scenarioID string, point *models.PlotPoint) (*models.PlotPoint, error) {
	if point.Title == "" {
		return nil, apperrors.ErrValidation
	}
	if _, err := s.scenarios.Get(ctx, projectID, scenarioID); err != nil {
		return nil, err
	}
	point.ID = ident.New("plot")
	point.ScenarioID = scenarioID
	if err := s.scenarios.CreatePlotPoint(ctx, point); err != nil {
		return nil, err
	}
	return point, nil
}

func (s *storyService) UpdatePlotPoint(ctx context.Context, projectID, plotPointID string, update models.PlotPointUpdate) (*models.PlotPoint, error) {
	if err := s.scenarios.UpdatePlotPoint(ctx, projectID, plotPointID, update); err != nil {
		return nil, err
	}
	return s.scenarios.GetPlotPointScoped(ctx, projectID, plotPointID)
}

func (s *storyService) DeletePlotPoint(ctx context.Context, projectID, plotPointID string) error {
	return s.scenarios.DeletePlotPoint(ctx, projectID, plotPointID)
}

func (s *storyService) ReorderPlotPoints(ctx context.Context, projectID, scenarioID string, pointIDs []string) error {
	return s.scenarios.ReorderPlotPoints(ctx, projectID, scenarioID, pointIDs)
}

func (s *storyService) ListBlocks(ctx context.Context, projectID string) ([]models.ManuscriptBlock, error) {
	blocks, err := s.manuscripts.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []models.ManuscriptBlock{}
	}
	return blocks, nil
}

func (s *storyService) ImportFromScenario(ctx context.Context, projectID string) ([]models.ManuscriptBlock, error) {
	scenarios, err := s.scenarios.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, apperrors.ErrNotFound
	}
	points, err := s.scenarios.ListPlotPoints(ctx, scenarios[0].ID)
	if err != nil {
		return nil, err
	}

	blocks := make([]models.ManuscriptBlock, 0, len(points))
	for _, p := range points {
		content := fmt.Sprintf("(%s)", deref(p.Content))
		if p.SceneDraft != nil && *p.SceneDraft != "" {
			content = *p.SceneDraft
		}
		chars, words := models.CountContent(content)
		blocks = append(blocks, models.ManuscriptBlock{
			ID:        ident.New("ms-block"),
			ProjectID: projectID,
			Title:     p.Title,
			Content:   &content,
			CharCount: &chars,
			WordCount: &words,
		})
	}

	err = s.db.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.manuscripts.DeleteAll(ctx, projectID); err != nil {
			return err
		}
		return s.manuscripts.InsertBlocks(ctx, blocks)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import manuscript blocks: %w", err)
	}

	return s.manuscripts.ListByProject(ctx, projectID)
}

func (s *storyService) ClearBlocks(ctx context.Context, projectID string) error {
	return s.manuscripts.DeleteAll(ctx, projectID)
}

func (s *storyService) UpdateBlock(ctx context.Context, projectID, blockID string, update models.ManuscriptBlockUpdate) (*models.ManuscriptBlock, error) {
	if update.Title == nil && update.Content == nil {
		return nil, apperrors.ErrValidation
	}
	if err := s.manuscripts.Update(ctx, projectID, blockID, update); err != nil {
		return nil, err
	}
	return s.manuscripts.Get(ctx, projectID, blockID)
}

func (s *storyService) DeleteBlock(ctx context.Context, projectID, blockID string) error {
	return s.manuscripts.Delete(ctx, projectID, blockID)
}

func (s *storyService) ReorderBlocks(ctx context.Context, projectID string, blockIDs []string) error {
	return s.manuscripts.Reorder(ctx, projectID, blockIDs)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ StoryService = (*storyService)(nil)
