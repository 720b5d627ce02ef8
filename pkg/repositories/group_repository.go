package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/database"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

// GroupRepository defines the interface for character-group data access.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	Get(ctx context.Context, projectID, groupID string) (*models.Group, error)
	// ListByProject returns groups sorted with the uncategorized group last,
	// then alphabetically.
	ListByProject(ctx context.Context, projectID string) ([]models.Group, error)
	Delete(ctx context.Context, projectID, groupID string) error
}

type groupRepository struct {
	db *database.DB
}

// NewGroupRepository creates a new group repository.
func NewGroupRepository(db *database.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `INSERT INTO groups (id, project_id, name) VALUES ($1, $2, $3)`

	_, err := r.db.Querier(ctx).Exec(ctx, query, group.ID, group.ProjectID, group.Name)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *groupRepository) Get(ctx context.Context, projectID, groupID string) (*models.Group, error) {
	query := `SELECT id, project_id, name FROM groups WHERE id = $1 AND project_id = $2`

	var g models.Group
	err := r.db.Querier(ctx).QueryRow(ctx, query, groupID, projectID).Scan(&g.ID, &g.ProjectID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &g, nil
}

func (r *groupRepository) ListByProject(ctx context.Context, projectID string) ([]models.Group, error) {
	query := `
		SELECT id, project_id, name
		FROM groups
		WHERE project_id = $1
		ORDER BY CASE WHEN name = $2 THEN 1 ELSE 0 END, name`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID, models.UncategorizedGroupName)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) Delete(ctx context.Context, projectID, groupID string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`DELETE FROM groups WHERE id = $1 AND project_id = $2`, groupID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ GroupRepository = (*groupRepository)(nil)
