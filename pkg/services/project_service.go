package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/assembly"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/clone"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/database"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/guard"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/ident"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/repositories"
)

// ProjectService manages project lifecycle, the password guard surface, and
// full-project assembly.
type ProjectService interface {
	Create(ctx context.Context, name string) (*assembly.ProjectView, error)
	List(ctx context.Context) ([]assembly.ProjectView, error)
	Get(ctx context.Context, projectID string) (*assembly.ProjectView, error)
	UpdateName(ctx context.Context, projectID, name string) (*models.Project, error)
	Delete(ctx context.Context, projectID string) error

	// Status reports whether the project exists and is password protected.
	// It is reachable without the password so clients know to prompt for one.
	Status(ctx context.Context, projectID string) (bool, error)
	VerifyPassword(ctx context.Context, projectID, password string) (bool, error)
	// SetPassword sets or changes the password. The caller must already have
	// passed the guard, so knowing the current password is implied.
	SetPassword(ctx context.Context, projectID, newPassword string) error

	ImportSample(ctx context.Context, payload clone.SamplePayload) (*assembly.ProjectView, error)
}

type projectService struct {
	db            *database.DB
	projects      repositories.ProjectRepository
	groups        repositories.GroupRepository
	cards         repositories.CardRepository
	worldviews    repositories.WorldviewRepository
	relationships repositories.RelationshipRepository
	scenarios     repositories.ScenarioRepository
	manuscripts   repositories.ManuscriptRepository
	logger        *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(
	db *database.DB,
	projects repositories.ProjectRepository,
	groups repositories.GroupRepository,
	cards repositories.CardRepository,
	worldviews repositories.WorldviewRepository,
	relationships repositories.RelationshipRepository,
	scenarios repositories.ScenarioRepository,
	manuscripts repositories.ManuscriptRepository,
	logger *zap.Logger,
) ProjectService {
	return &projectService{
		db:            db,
		projects:      projects,
		groups:        groups,
		cards:         cards,
		worldviews:    worldviews,
		relationships: relationships,
		scenarios:     scenarios,
		manuscripts:   manuscripts,
		logger:        logger.Named("projects"),
	}
}

// Create makes a project with its undeletable uncategorized group and its
// default scenario, all in one transaction.
func (s *projectService) Create(ctx context.Context, name string) (*assembly.ProjectView, error) {
	if name == "" {
		return nil, apperrors.ErrValidation
	}

	project := &models.Project{ID: ident.New("project"), Name: name}

	err := s.db.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.projects.Create(ctx, project); err != nil {
			return err
		}
		if err := s.groups.Create(ctx, &models.Group{
			ID:        ident.New("group-uncategorized"),
			ProjectID: project.ID,
			Name:      models.UncategorizedGroupName,
		}); err != nil {
			return err
		}
		return s.scenarios.Create(ctx, &models.Scenario{
			ID:        ident.New("scenario"),
			ProjectID: project.ID,
			Title:     models.DefaultScenarioTitle,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.assemble(ctx, project)
}

func (s *projectService) List(ctx context.Context) ([]assembly.ProjectView, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]assembly.ProjectView, 0, len(projects))
	for i := range projects {
		view, err := s.assemble(ctx, &projects[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *projectService) Get(ctx context.Context, projectID string) (*assembly.ProjectView, error) {
	project := guard.ProjectFromContext(ctx)
	if project == nil || project.ID != projectID {
		var err error
		project, err = s.projects.Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
	}
	return s.assemble(ctx, project)
}

func (s *projectService) assemble(ctx context.Context, project *models.Project) (*assembly.ProjectView, error) {
	groups, err := s.groups.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	worldview, err := s.worldviews.GetWorldview(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	wvGroups, err := s.worldviews.ListGroups(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	var wvCards []models.WorldviewCard
	for _, g := range wvGroups {
		groupCards, err := s.worldviews.ListCardsByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		wvCards = append(wvCards, groupCards...)
	}
	relationships, err := s.relationships.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	for i := range relationships {
		phases, err := s.relationships.ListPhases(ctx, relationships[i].ID)
		if err != nil {
			return nil, err
		}
		relationships[i].Phases = phases
	}
	scenarios, err := s.scenarios.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	points := make(map[string][]models.PlotPoint, len(scenarios))
	for _, sc := range scenarios {
		p, err := s.scenarios.ListPlotPoints(ctx, sc.ID)
		if err != nil {
			return nil, err
		}
		points[sc.ID] = p
	}
	blocks, err := s.manuscripts.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	view, backfills := assembly.Assemble(assembly.Input{
		Project:         project,
		Groups:          groups,
		Cards:           cards,
		Worldview:       worldview,
		WorldviewGroups: wvGroups,
		WorldviewCards:  wvCards,
		Relationships:   relationships,
		Scenarios:       scenarios,
		PlotPoints:      points,
		Blocks:          blocks,
	})

	// Best effort; the computed counters are already in the response.
	for _, bf := range backfills {
		if err := s.manuscripts.UpdateCounts(ctx, bf.BlockID, bf.CharCount, bf.WordCount); err != nil {
			s.logger.Warn("failed to backfill block counts",
				zap.String("block_id", bf.BlockID), zap.Error(err))
		}
	}

	return view, nil
}

func (s *projectService) UpdateName(ctx context.Context, projectID, name string) (*models.Project, error) {
	if name == "" {
		return nil, apperrors.ErrValidation
	}
	if err := s.projects.UpdateName(ctx, projectID, name); err != nil {
		return nil, err
	}
	return s.projects.Get(ctx, projectID)
}

func (s *projectService) Delete(ctx context.Context, projectID string) error {
	return s.projects.Delete(ctx, projectID)
}

func (s *projectService) Status(ctx context.Context, projectID string) (bool, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return false, err
	}
	return project.HasPassword(), nil
}

func (s *projectService) VerifyPassword(ctx context.Context, projectID, password string) (bool, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return false, err
	}
	if !project.HasPassword() {
		return true, nil
	}
	return guard.VerifyPassword(*project.PasswordHash, password), nil
}

func (s *projectService) SetPassword(ctx context.Context, projectID, newPassword string) error {
	if newPassword == "" {
		// Empty password clears protection.
		return s.projects.SetPasswordHash(ctx, projectID, nil)
	}
	hash, err := guard.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.projects.SetPasswordHash(ctx, projectID, &hash)
}

// ImportSample materializes a sample payload as a new project in one
// transaction. Relationships with unresolvable endpoints are dropped by the
// planner and logged here.
func (s *projectService) ImportSample(ctx context.Context, payload clone.SamplePayload) (*assembly.ProjectView, error) {
	if payload.Name == "" {
		return nil, apperrors.ErrValidation
	}

	plan := clone.Build(payload)
	if plan.DroppedRelationships > 0 {
		s.logger.Warn("dropped sample relationships with unresolvable endpoints",
			zap.Int("count", plan.DroppedRelationships),
			zap.String("project_id", plan.Project.ID))
	}

	err := s.db.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.projects.Create(ctx, &plan.Project); err != nil {
			return err
		}
		for i := range plan.Groups {
			if err := s.groups.Create(ctx, &plan.Groups[i]); err != nil {
				return err
			}
		}
		for i := range plan.Cards {
			if err := s.cards.Create(ctx, &plan.Cards[i]); err != nil {
				return err
			}
		}
		if plan.Worldview != nil {
			if err := s.worldviews.UpsertWorldview(ctx, plan.Project.ID, *plan.Worldview); err != nil {
				return err
			}
		}
		for i := range plan.WorldviewGroups {
			if err := s.worldviews.CreateGroup(ctx, &plan.WorldviewGroups[i]); err != nil {
				return err
			}
		}
		for i := range plan.WorldviewCards {
			if err := s.worldviews.CreateCard(ctx, plan.Project.ID, &plan.WorldviewCards[i]); err != nil {
				return err
			}
		}
		for i := range plan.Relationships {
			if err := s.relationships.Create(ctx, &plan.Relationships[i]); err != nil {
				return err
			}
		}
		if err := s.scenarios.Create(ctx, &plan.Scenario); err != nil {
			return err
		}
		for i := range plan.PlotPoints {
			if err := s.scenarios.CreatePlotPoint(ctx, &plan.PlotPoints[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import sample project: %w", err)
	}

	return s.assemble(ctx, &plan.Project)
}

var _ ProjectService = (*projectService)(nil)
