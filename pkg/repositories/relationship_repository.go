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
)

// RelationshipRepository defines data access for character relationships and
// their phase history.
type RelationshipRepository interface {
	Create(ctx context.Context, rel *models.Relationship) error
	Get(ctx context.Context, projectID, relationshipID string) (*models.Relationship, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Relationship, error)
	// GetReverse finds an existing relationship pointing the opposite way
	// between the same two characters, when one exists.
	GetReverse(ctx context.Context, projectID, sourceCharacterID, targetCharacterID string) (*models.Relationship, error)
	Update(ctx context.Context, projectID, relationshipID, relType string, description *string) error
	SetPhaseOrder(ctx context.Context, projectID, relationshipID string, phaseOrder int) error
	Delete(ctx context.Context, projectID, relationshipID string) error

	CreatePhase(ctx context.Context, projectID string, phase *models.RelationshipPhase) error
	ListPhases(ctx context.Context, relationshipID string) ([]models.RelationshipPhase, error)
	UpdatePhase(ctx context.Context, projectID, phaseID string, update models.RelationshipPhaseUpdate) error
	DeletePhase(ctx context.Context, projectID, phaseID string) error
}

type relationshipRepository struct {
	db *database.DB
}

// NewRelationshipRepository creates a new relationship repository.
func NewRelationshipRepository(db *database.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

const relationshipColumns = `id, project_id, source_character_id, target_character_id, type, description, phase_order`

func (r *relationshipRepository) Create(ctx context.Context, rel *models.Relationship) error {
	if rel.PhaseOrder == 0 {
		rel.PhaseOrder = 1
	}
	query := `
		INSERT INTO relationships (id, project_id, source_character_id, target_character_id, type, description, phase_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		rel.ID, rel.ProjectID, rel.SourceCharacterID, rel.TargetCharacterID,
		rel.Type, rel.Description, rel.PhaseOrder)
	if err != nil {
		return fmt.Errorf("failed to create relationship: %w", err)
	}
	return nil
}

func (r *relationshipRepository) Get(ctx context.Context, projectID, relationshipID string) (*models.Relationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM relationships WHERE id = $1 AND project_id = $2`

	var rel models.Relationship
	err := r.db.Querier(ctx).QueryRow(ctx, query, relationshipID, projectID).Scan(
		&rel.ID, &rel.ProjectID, &rel.SourceCharacterID, &rel.TargetCharacterID,
		&rel.Type, &rel.Description, &rel.PhaseOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get relationship: %w", err)
	}
	return &rel, nil
}

func (r *relationshipRepository) ListByProject(ctx context.Context, projectID string) ([]models.Relationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM relationships WHERE project_id = $1`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	var rels []models.Relationship
	for rows.Next() {
		var rel models.Relationship
		if err := rows.Scan(&rel.ID, &rel.ProjectID, &rel.SourceCharacterID, &rel.TargetCharacterID,
			&rel.Type, &rel.Description, &rel.PhaseOrder); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

func (r *relationshipRepository) GetReverse(ctx context.Context, projectID, sourceCharacterID, targetCharacterID string) (*models.Relationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		WHERE project_id = $1 AND source_character_id = $2 AND target_character_id = $3`

	var rel models.Relationship
	err := r.db.Querier(ctx).QueryRow(ctx, query, projectID, targetCharacterID, sourceCharacterID).Scan(
		&rel.ID, &rel.ProjectID, &rel.SourceCharacterID, &rel.TargetCharacterID,
		&rel.Type, &rel.Description, &rel.PhaseOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reverse relationship: %w", err)
	}
	return &rel, nil
}

func (r *relationshipRepository) Update(ctx context.Context, projectID, relationshipID, relType string, description *string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE relationships SET type = $1, description = $2 WHERE id = $3 AND project_id = $4`,
		relType, description, relationshipID, projectID)
	if err != nil {
		return fmt.Errorf("failed to update relationship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *relationshipRepository) SetPhaseOrder(ctx context.Context, projectID, relationshipID string, phaseOrder int) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE relationships SET phase_order = $1 WHERE id = $2 AND project_id = $3`,
		phaseOrder, relationshipID, projectID)
	if err != nil {
		return fmt.Errorf("failed to update relationship phase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *relationshipRepository) Delete(ctx context.Context, projectID, relationshipID string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`DELETE FROM relationships WHERE id = $1 AND project_id = $2`, relationshipID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const phaseColumns = `id, relationship_id, phase_order, type, description, trigger_description,
		source_to_target_address, source_to_target_tone, target_to_source_address, target_to_source_tone`

func (r *relationshipRepository) CreatePhase(ctx context.Context, projectID string, phase *models.RelationshipPhase) error {
	q := r.db.Querier(ctx)

	var exists int
	err := q.QueryRow(ctx,
		`SELECT 1 FROM relationships WHERE id = $1 AND project_id = $2`,
		phase.RelationshipID, projectID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify relationship: %w", err)
	}

	query := `
		INSERT INTO relationship_phases (` + phaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = q.Exec(ctx, query,
		phase.ID, phase.RelationshipID, phase.PhaseOrder, phase.Type, phase.Description,
		phase.TriggerDescription, phase.SourceToTargetAddress, phase.SourceToTargetTone,
		phase.TargetToSourceAddress, phase.TargetToSourceTone)
	if err != nil {
		return fmt.Errorf("failed to create relationship phase: %w", err)
	}
	return nil
}

func (r *relationshipRepository) ListPhases(ctx context.Context, relationshipID string) ([]models.RelationshipPhase, error) {
	query := `SELECT ` + phaseColumns + ` FROM relationship_phases WHERE relationship_id = $1 ORDER BY phase_order`

	rows, err := r.db.Querier(ctx).Query(ctx, query, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationship phases: %w", err)
	}
	defer rows.Close()

	var phases []models.RelationshipPhase
	for rows.Next() {
		var p models.RelationshipPhase
		if err := rows.Scan(&p.ID, &p.RelationshipID, &p.PhaseOrder, &p.Type, &p.Description,
			&p.TriggerDescription, &p.SourceToTargetAddress, &p.SourceToTargetTone,
			&p.TargetToSourceAddress, &p.TargetToSourceTone); err != nil {
			return nil, fmt.Errorf("failed to scan relationship phase: %w", err)
		}
		phases = append(phases, p)
	}
	return phases, rows.Err()
}

func (r *relationshipRepository) UpdatePhase(ctx context.Context, projectID, phaseID string, update models.RelationshipPhaseUpdate) error {
	q := r.db.Querier(ctx)

	var exists int
	err := q.QueryRow(ctx, `
		SELECT 1 FROM relationship_phases p
		JOIN relationships rel ON p.relationship_id = rel.id
		WHERE p.id = $1 AND rel.project_id = $2`, phaseID, projectID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify relationship phase: %w", err)
	}

	setClauses := make([]string, 0, 8)
	args := make([]any, 0, 9)
	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.PhaseOrder != nil {
		add("phase_order", *update.PhaseOrder)
	}
	if update.Type != nil {
		add("type", *update.Type)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.TriggerDescription != nil {
		add("trigger_description", *update.TriggerDescription)
	}
	if update.SourceToTargetAddress != nil {
		add("source_to_target_address", *update.SourceToTargetAddress)
	}
	if update.SourceToTargetTone != nil {
		add("source_to_target_tone", *update.SourceToTargetTone)
	}
	if update.TargetToSourceAddress != nil {
		add("target_to_source_address", *update.TargetToSourceAddress)
	}
	if update.TargetToSourceTone != nil {
		add("target_to_source_tone", *update.TargetToSourceTone)
	}
	if len(setClauses) == 0 {
		return apperrors.ErrValidation
	}

	args = append(args, phaseID)
	query := fmt.Sprintf("UPDATE relationship_phases SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(args))

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update relationship phase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *relationshipRepository) DeletePhase(ctx context.Context, projectID, phaseID string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx, `
		DELETE FROM relationship_phases
		WHERE id = $1
		  AND relationship_id IN (SELECT id FROM relationships WHERE project_id = $2)`,
		phaseID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete relationship phase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ RelationshipRepository = (*relationshipRepository)(nil)
