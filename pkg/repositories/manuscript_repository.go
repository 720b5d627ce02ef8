package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/database"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/ordering"
)

// ManuscriptRepository defines data access for manuscript blocks.
type ManuscriptRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]models.ManuscriptBlock, error)
	Get(ctx context.Context, projectID, blockID string) (*models.ManuscriptBlock, error)
	// InsertBlocks inserts blocks in slice order with dense orderings.
	InsertBlocks(ctx context.Context, blocks []models.ManuscriptBlock) error
	Update(ctx context.Context, projectID, blockID string, update models.ManuscriptBlockUpdate) error
	// UpdateCounts backfills derived counters on one block.
	UpdateCounts(ctx context.Context, blockID string, charCount, wordCount int) error
	// Delete removes the block and re-indexes the project's remaining blocks.
	Delete(ctx context.Context, projectID, blockID string) error
	DeleteAll(ctx context.Context, projectID string) error
	Reorder(ctx context.Context, projectID string, orderedIDs []string) error
}

type manuscriptRepository struct {
	db *database.DB
}

// NewManuscriptRepository creates a new manuscript repository.
func NewManuscriptRepository(db *database.DB) ManuscriptRepository {
	return &manuscriptRepository{db: db}
}

const blockColumns = `id, project_id, title, content, ordering, char_count, word_count`

func (r *manuscriptRepository) ListByProject(ctx context.Context, projectID string) ([]models.ManuscriptBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM manuscript_blocks WHERE project_id = $1 ORDER BY ordering`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list manuscript blocks: %w", err)
	}
	defer rows.Close()

	var blocks []models.ManuscriptBlock
	for rows.Next() {
		var b models.ManuscriptBlock
		if err := rows.Scan(&b.ID, &b.ProjectID, &b.Title, &b.Content, &b.Ordering,
			&b.CharCount, &b.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan manuscript block: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *manuscriptRepository) Get(ctx context.Context, projectID, blockID string) (*models.ManuscriptBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM manuscript_blocks WHERE id = $1 AND project_id = $2`

	var b models.ManuscriptBlock
	err := r.db.Querier(ctx).QueryRow(ctx, query, blockID, projectID).
		Scan(&b.ID, &b.ProjectID, &b.Title, &b.Content, &b.Ordering, &b.CharCount, &b.WordCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get manuscript block: %w", err)
	}
	return &b, nil
}

func (r *manuscriptRepository) InsertBlocks(ctx context.Context, blocks []models.ManuscriptBlock) error {
	q := r.db.Querier(ctx)
	for i := range blocks {
		ord := i
		blocks[i].Ordering = &ord
		if _, err := q.Exec(ctx, `
			INSERT INTO manuscript_blocks (id, project_id, title, content, ordering, char_count, word_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			blocks[i].ID, blocks[i].ProjectID, blocks[i].Title, blocks[i].Content,
			blocks[i].Ordering, blocks[i].CharCount, blocks[i].WordCount); err != nil {
			return fmt.Errorf("failed to insert manuscript block: %w", err)
		}
	}
	return nil
}

func (r *manuscriptRepository) Update(ctx context.Context, projectID, blockID string, update models.ManuscriptBlockUpdate) error {
	block, err := r.Get(ctx, projectID, blockID)
	if err != nil {
		return err
	}

	title := block.Title
	if update.Title != nil {
		title = *update.Title
	}
	content := block.Content
	if update.Content != nil {
		content = update.Content
	}

	// Derived counters track the content they were computed from.
	var charCount, wordCount *int
	if content != nil {
		c, w := models.CountContent(*content)
		charCount, wordCount = &c, &w
	}

	_, err = r.db.Querier(ctx).Exec(ctx, `
		UPDATE manuscript_blocks
		SET title = $1, content = $2, char_count = $3, word_count = $4
		WHERE id = $5 AND project_id = $6`,
		title, content, charCount, wordCount, blockID, projectID)
	if err != nil {
		return fmt.Errorf("failed to update manuscript block: %w", err)
	}
	return nil
}

func (r *manuscriptRepository) UpdateCounts(ctx context.Context, blockID string, charCount, wordCount int) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE manuscript_blocks SET char_count = $1, word_count = $2 WHERE id = $3`,
		charCount, wordCount, blockID)
	if err != nil {
		return fmt.Errorf("failed to update manuscript block counts: %w", err)
	}
	return nil
}

func (r *manuscriptRepository) Delete(ctx context.Context, projectID, blockID string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`DELETE FROM manuscript_blocks WHERE id = $1 AND project_id = $2`, blockID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete manuscript block: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.reindexProject(ctx, projectID)
}

func (r *manuscriptRepository) DeleteAll(ctx context.Context, projectID string) error {
	if _, err := r.db.Querier(ctx).Exec(ctx,
		`DELETE FROM manuscript_blocks WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to clear manuscript blocks: %w", err)
	}
	return nil
}

func (r *manuscriptRepository) Reorder(ctx context.Context, projectID string, orderedIDs []string) error {
	members, err := r.projectMembers(ctx, projectID)
	if err != nil {
		return err
	}
	q := r.db.Querier(ctx)
	for _, change := range ordering.Apply(orderedIDs, members) {
		if _, err := q.Exec(ctx,
			`UPDATE manuscript_blocks SET ordering = $1 WHERE id = $2 AND project_id = $3`,
			change.Ordering, change.ID, projectID); err != nil {
			return fmt.Errorf("failed to apply manuscript block ordering: %w", err)
		}
	}
	return nil
}

func (r *manuscriptRepository) projectMembers(ctx context.Context, projectID string) ([]ordering.Member, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, ordering FROM manuscript_blocks WHERE project_id = $1 ORDER BY ordering`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load manuscript block orderings: %w", err)
	}
	defer rows.Close()

	var members []ordering.Member
	for rows.Next() {
		var m ordering.Member
		if err := rows.Scan(&m.ID, &m.Ordering); err != nil {
			return nil, fmt.Errorf("failed to scan manuscript block ordering: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *manuscriptRepository) reindexProject(ctx context.Context, projectID string) error {
	members, err := r.projectMembers(ctx, projectID)
	if err != nil {
		return err
	}
	q := r.db.Querier(ctx)
	for _, change := range ordering.Reindex(members) {
		if _, err := q.Exec(ctx,
			`UPDATE manuscript_blocks SET ordering = $1 WHERE id = $2 AND project_id = $3`,
			change.Ordering, change.ID, projectID); err != nil {
			return fmt.Errorf("failed to reindex manuscript blocks: %w", err)
		}
	}
	return nil
}

var _ ManuscriptRepository = (*manuscriptRepository)(nil)
