package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/ident"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/repositories"
)

// WorldviewService manages the main worldview text and the worldview
// sub-group/card tree.
type WorldviewService interface {
	Get(ctx context.Context, projectID string) (models.WorldviewContent, error)
	Update(ctx context.Context, projectID string, content models.WorldviewContent) error

	CreateGroup(ctx context.Context, projectID, name string) (*models.WorldviewGroup, error)
	DeleteGroup(ctx context.Context, projectID, groupID string) error

	CreateCard(ctx context.Context, projectID, groupID string, card *models.WorldviewCard) (*models.WorldviewCard, error)
	UpdateCard(ctx context.Context, projectID, cardID string, update models.WorldviewCardUpdate) error
	DeleteCard(ctx context.Context, projectID, cardID string) error
	MoveCard(ctx context.Context, projectID, cardID, sourceGroupID, targetGroupID string) error
	ReorderCards(ctx context.Context, projectID, groupID string, cardIDs []string) error
}

type worldviewService struct {
	worldviews repositories.WorldviewRepository
	logger     *zap.Logger
}

// NewWorldviewService creates a new worldview service.
func NewWorldviewService(worldviews repositories.WorldviewRepository, logger *zap.Logger) WorldviewService {
	return &worldviewService{worldviews: worldviews, logger: logger.Named("worldview")}
}

func (s *worldviewService) Get(ctx context.Context, projectID string) (models.WorldviewContent, error) {
	wv, err := s.worldviews.GetWorldview(ctx, projectID)
	if err != nil {
		return models.WorldviewContent{}, err
	}
	return models.DecodeWorldviewContent(wv.Content), nil
}

func (s *worldviewService) Update(ctx context.Context, projectID string, content models.WorldviewContent) error {
	return s.worldviews.UpsertWorldview(ctx, projectID, content.Encode())
}

func (s *worldviewService) CreateGroup(ctx context.Context, projectID, name string) (*models.WorldviewGroup, error) {
	if name == "" {
		return nil, apperrors.ErrValidation
	}
	group := &models.WorldviewGroup{ID: ident.New("wv-group"), ProjectID: projectID, Name: name}
	if err := s.worldviews.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *worldviewService) DeleteGroup(ctx context.Context, projectID, groupID string) error {
	return s.worldviews.DeleteGroup(ctx, projectID, groupID)
}

func (s *worldviewService) CreateCard(ctx context.Context, projectID, groupID string, card *models.WorldviewCard) (*models.WorldviewCard, error) {
	if card.Title == "" {
		return nil, apperrors.ErrValidation
	}
	card.ID = ident.New("wv-card")
	card.GroupID = groupID
	if err := s.worldviews.CreateCard(ctx, projectID, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *worldviewService) UpdateCard(ctx context.Context, projectID, cardID string, update models.WorldviewCardUpdate) error {
	return s.worldviews.UpdateCard(ctx, projectID, cardID, update)
}

func (s *worldviewService) DeleteCard(ctx context.Context, projectID, cardID string) error {
	return s.worldviews.DeleteCard(ctx, projectID, cardID)
}

func (s *worldviewService) MoveCard(ctx context.Context, projectID, cardID, sourceGroupID, targetGroupID string) error {
	return s.worldviews.MoveCard(ctx, projectID, cardID, sourceGroupID, targetGroupID)
}

func (s *worldviewService) ReorderCards(ctx context.Context, projectID, groupID string, cardIDs []string) error {
	return s.worldviews.Reorder(ctx, projectID, groupID, cardIDs)
}

var _ WorldviewService = (*worldviewService)(nil)
