package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/database"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	UpdateName(ctx context.Context, id, name string) error
	SetPasswordHash(ctx context.Context, id string, hash *string) error
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	query := `
		INSERT INTO projects (id, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		project.ID, project.Name, project.PasswordHash, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query := `
		SELECT id, name, password_hash, created_at, updated_at
		FROM projects
		WHERE id = $1`

	var project models.Project
	err := r.db.Querier(ctx).QueryRow(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.PasswordHash, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := `
		SELECT id, name, password_hash, created_at, updated_at
		FROM projects
		ORDER BY name`

	rows, err := r.db.Querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) UpdateName(ctx context.Context, id, name string) error {
	query := `UPDATE projects SET name = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Querier(ctx).Exec(ctx, query, name, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *projectRepository) SetPasswordHash(ctx context.Context, id string, hash *string) error {
	query := `UPDATE projects SET password_hash = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Querier(ctx).Exec(ctx, query, hash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set project password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ ProjectRepository = (*projectRepository)(nil)
