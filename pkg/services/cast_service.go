package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/ident"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/repositories"
)

// CastService manages character groups, cards, and relationships.
type CastService interface {
	CreateGroup(ctx context.Context, projectID, name string) (*models.Group, error)
	DeleteGroup(ctx context.Context, projectID, groupID string) error

	CreateCard(ctx context.Context, projectID, groupID string, card *models.Card) (*models.Card, error)
	UpdateCard(ctx context.Context, projectID, cardID string, update models.CardUpdate) error
	DeleteCard(ctx context.Context, projectID, groupID, cardID string) error
	MoveCard(ctx context.Context, projectID, cardID, sourceGroupID, targetGroupID string) error
	ReorderCards(ctx context.Context, projectID, groupID string, cardIDs []string) error

	CreateRelationship(ctx context.Context, projectID string, rel *models.Relationship) (*models.Relationship, error)
	UpdateRelationship(ctx context.Context, projectID, relationshipID, relType string, description *string) (*models.Relationship, error)
	SetRelationshipPhaseOrder(ctx context.Context, projectID, relationshipID string, phaseOrder int) error
	DeleteRelationship(ctx context.Context, projectID, relationshipID string) error

	CreatePhase(ctx context.Context, projectID string, phase *models.RelationshipPhase) (*models.RelationshipPhase, error)
	ListPhases(ctx context.Context, projectID, relationshipID string) ([]models.RelationshipPhase, error)
	UpdatePhase(ctx context.Context, projectID, phaseID string, update models.RelationshipPhaseUpdate) error
	DeletePhase(ctx context.Context, projectID, phaseID string) error
}

type castService struct {
	groups        repositories.GroupRepository
	cards         repositories.CardRepository
	relationships repositories.RelationshipRepository
	logger        *zap.Logger
}

// NewCastService creates a new cast service.
func NewCastService(
	groups repositories.GroupRepository,
	cards repositories.CardRepository,
	relationships repositories.RelationshipRepository,
	logger *zap.Logger,
) CastService {
	return &castService{
		groups:        groups,
		cards:         cards,
		relationships: relationships,
		logger:        logger.Named("cast"),
	}
}

func (s *castService) CreateGroup(ctx context.Context, projectID, name string) (*models.Group, error) {
	if name == "" {
		return nil, apperrors.ErrValidation
	}
	group := &models.Group{ID: ident.New("group"), ProjectID: projectID, Name: name}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup refuses to remove the uncategorized group; every project keeps
// exactly one.
func (s *castService) DeleteGroup(ctx context.Context, projectID, groupID string) error {
	group, err := s.groups.Get(ctx, projectID, groupID)
	if err != nil {
		return err
	}
	if group.IsUncategorized() {
		return apperrors.ErrValidation
	}
	return s.groups.Delete(ctx, projectID, groupID)
}

func (s *castService) CreateCard(ctx context.Context, projectID, groupID string, card *models.Card) (*models.Card, error) {
	if card.Name == "" {
		return nil, apperrors.ErrValidation
	}
	if _, err := s.groups.Get(ctx, projectID, groupID); err != nil {
		return nil, err
	}
	card.ID = ident.New("card")
	card.GroupID = groupID
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *castService) UpdateCard(ctx context.Context, projectID, cardID string, update models.CardUpdate) error {
	return s.cards.Update(ctx, projectID, cardID, update)
}

func (s *castService) DeleteCard(ctx context.Context, projectID, groupID, cardID string) error {
	return s.cards.Delete(ctx, projectID, groupID, cardID)
}

func (s *castService) MoveCard(ctx context.Context, projectID, cardID, sourceGroupID, targetGroupID string) error {
	return s.cards.Move(ctx, projectID, cardID, sourceGroupID, targetGroupID)
}

func (s *castService) ReorderCards(ctx context.Context, projectID, groupID string, cardIDs []string) error {
	return s.cards.Reorder(ctx, projectID, groupID, cardIDs)
}

func (s *castService) CreateRelationship(ctx context.Context, projectID string, rel *models.Relationship) (*models.Relationship, error) {
	if rel.SourceCharacterID == "" || rel.TargetCharacterID == "" || rel.Type == "" {
		return nil, apperrors.ErrValidation
	}
	// Both endpoints must be cards of this project.
	cards, err := s.cards.ListByIDs(ctx, projectID, []string{rel.SourceCharacterID, rel.TargetCharacterID})
	if err != nil {
		return nil, err
	}
	want := 2
	if rel.SourceCharacterID == rel.TargetCharacterID {
		want = 1
	}
	if len(cards) != want {
		return nil, apperrors.ErrNotFound
	}

	rel.ID = ident.New("rel")
	rel.ProjectID = projectID
	if err := s.relationships.Create(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *castService) UpdateRelationship(ctx context.Context, projectID, relationshipID, relType string, description *string) (*models.Relationship, error) {
	if relType == "" {
		return nil, apperrors.ErrValidation
	}
	if err := s.relationships.Update(ctx, projectID, relationshipID, relType, description); err != nil {
		return nil, err
	}
	return s.relationships.Get(ctx, projectID, relationshipID)
}

func (s *castService) SetRelationshipPhaseOrder(ctx context.Context, projectID, relationshipID string, phaseOrder int) error {
	if phaseOrder < 1 {
		return apperrors.ErrValidation
	}
	return s.relationships.SetPhaseOrder(ctx, projectID, relationshipID, phaseOrder)
}

func (s *castService) DeleteRelationship(ctx context.Context, projectID, relationshipID string) error {
	return s.relationships.Delete(ctx, projectID, relationshipID)
}

func (s *castService) CreatePhase(ctx context.Context, projectID string, phase *models.RelationshipPhase) (*models.RelationshipPhase, error) {
	if phase.RelationshipID == "" || phase.Type == "" {
		return nil, apperrors.ErrValidation
	}
	if phase.PhaseOrder < 1 {
		phase.PhaseOrder = 1
	}
	phase.ID = ident.New("phase")
	if err := s.relationships.CreatePhase(ctx, projectID, phase); err != nil {
		return nil, err
	}
	return phase, nil
}

func (s *castService) ListPhases(ctx context.Context, projectID, relationshipID string) ([]models.RelationshipPhase, error) {
	if _, err := s.relationships.Get(ctx, projectID, relationshipID); err != nil {
		return nil, err
	}
	return s.relationships.ListPhases(ctx, relationshipID)
}

func (s *castService) UpdatePhase(ctx context.Context, projectID, phaseID string, update models.RelationshipPhaseUpdate) error {
	return s.relationships.UpdatePhase(ctx, projectID, phaseID, update)
}

func (s *castService) DeletePhase(ctx context.Context, projectID, phaseID string) error {
	return s.relationships.DeletePhase(ctx, projectID, phaseID)
}

var _ CastService = (*castService)(nil)
