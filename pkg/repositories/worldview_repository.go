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

// WorldviewRepository defines data access for the main worldview text and the
// worldview sub-group/card tree.
type WorldviewRepository interface {
	GetWorldview(ctx context.Context, projectID string) (*models.Worldview, error)
	UpsertWorldview(ctx context.Context, projectID, content string) error

	CreateGroup(ctx context.Context, group *models.WorldviewGroup) error
	ListGroups(ctx context.Context, projectID string) ([]models.WorldviewGroup, error)
	DeleteGroup(ctx context.Context, projectID, groupID string) error

	// CreateCard inserts the card appended at the end of its group. The group
	// must belong to the project.
	CreateCard(ctx context.Context, projectID string, card *models.WorldviewCard) error
	GetCardScoped(ctx context.Context, projectID, cardID string) (*models.WorldviewCard, error)
	ListCardsByGroup(ctx context.Context, groupID string) ([]models.WorldviewCard, error)
	ListCardsByIDs(ctx context.Context, projectID string, ids []string) ([]models.WorldviewCard, error)
	UpdateCard(ctx context.Context, projectID, cardID string, update models.WorldviewCardUpdate) error
	DeleteCard(ctx context.Context, projectID, cardID string) error
	MoveCard(ctx context.Context, projectID, cardID, sourceGroupID, targetGroupID string) error
	Reorder(ctx context.Context, projectID, groupID string, orderedIDs []string) error
}

type worldviewRepository struct {
	db *database.DB
}

// NewWorldviewRepository creates a new worldview repository.
func NewWorldviewRepository(db *database.DB) WorldviewRepository {
	return &worldviewRepository{db: db}
}

func (r *worldviewRepository) GetWorldview(ctx context.Context, projectID string) (*models.Worldview, error) {
	var wv models.Worldview
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT project_id, content FROM worldviews WHERE project_id = $1`, projectID).
		Scan(&wv.ProjectID, &wv.Content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.Worldview{ProjectID: projectID}, nil
		}
		return nil, fmt.Errorf("failed to get worldview: %w", err)
	}
	return &wv, nil
}

func (r *worldviewRepository) UpsertWorldview(ctx context.Context, projectID, content string) error {
	query := `
		INSERT INTO worldviews (project_id, content)
		VALUES ($1, $2)
		ON CONFLICT (project_id) DO UPDATE SET content = EXCLUDED.content`

	if _, err := r.db.Querier(ctx).Exec(ctx, query, projectID, content); err != nil {
		return fmt.Errorf("failed to upsert worldview: %w", err)
	}
	return nil
}

func (r *worldviewRepository) CreateGroup(ctx context.Context, group *models.WorldviewGroup) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO worldview_groups (id, project_id, name) VALUES ($1, $2, $3)`,
		group.ID, group.ProjectID, group.Name)
	if err != nil {
		return fmt.Errorf("failed to create worldview group: %w", err)
	}
	return nil
}

func (r *worldviewRepository) ListGroups(ctx context.Context, projectID string) ([]models.WorldviewGroup, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, project_id, name FROM worldview_groups WHERE project_id = $1 ORDER BY name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list worldview groups: %w", err)
	}
	defer rows.Close()

	var groups []models.WorldviewGroup
	for rows.Next() {
		var g models.WorldviewGroup
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan worldview group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *worldviewRepository) DeleteGroup(ctx context.Context, projectID, groupID string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`DELETE FROM worldview_groups WHERE id = $1 AND project_id = $2`, groupID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete worldview group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *worldviewRepository) CreateCard(ctx context.Context, projectID string, card *models.WorldviewCard) error {
	q := r.db.Querier(ctx)

	var exists int
	err := q.QueryRow(ctx,
		`SELECT 1 FROM worldview_groups WHERE id = $1 AND project_id = $2`,
		card.GroupID, projectID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify worldview group: %w", err)
	}

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(id) FROM worldview_cards WHERE group_id = $1`, card.GroupID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count sibling worldview cards: %w", err)
	}
	card.Ordering = &count

	_, err = q.Exec(ctx,
		`INSERT INTO worldview_cards (id, group_id, title, content, ordering) VALUES ($1, $2, $3, $4, $5)`,
		card.ID, card.GroupID, card.Title, card.Content, card.Ordering)
	if err != nil {
		return fmt.Errorf("failed to create worldview card: %w", err)
	}
	return nil
}

func (r *worldviewRepository) GetCardScoped(ctx context.Context, projectID, cardID string) (*models.WorldviewCard, error) {
	query := `
		SELECT wc.id, wc.group_id, wc.title, wc.content, wc.ordering
		FROM worldview_cards wc
		JOIN worldview_groups wg ON wc.group_id = wg.id
		WHERE wc.id = $1 AND wg.project_id = $2`

	var c models.WorldviewCard
	err := r.db.Querier(ctx).QueryRow(ctx, query, cardID, projectID).
		Scan(&c.ID, &c.GroupID, &c.Title, &c.Content, &c.Ordering)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get worldview card: %w", err)
	}
	return &c, nil
}

func (r *worldviewRepository) ListCardsByGroup(ctx context.Context, groupID string) ([]models.WorldviewCard, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, group_id, title, content, ordering FROM worldview_cards WHERE group_id = $1 ORDER BY ordering`,
		groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list worldview cards: %w", err)
	}
	defer rows.Close()
	return collectWorldviewCards(rows)
}

func (r *worldviewRepository) ListCardsByIDs(ctx context.Context, projectID string, ids []string) ([]models.WorldviewCard, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT wc.id, wc.group_id, wc.title, wc.content, wc.ordering
		FROM worldview_cards wc
		JOIN worldview_groups wg ON wc.group_id = wg.id
		WHERE wg.project_id = $1 AND wc.id = ANY($2)`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list worldview cards by ids: %w", err)
	}
	defer rows.Close()
	return collectWorldviewCards(rows)
}

func collectWorldviewCards(rows pgx.Rows) ([]models.WorldviewCard, error) {
	var cards []models.WorldviewCard
	for rows.Next() {
		var c models.WorldviewCard
		if err := rows.Scan(&c.ID, &c.GroupID, &c.Title, &c.Content, &c.Ordering); err != nil {
			return nil, fmt.Errorf("failed to scan worldview card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *worldviewRepository) UpdateCard(ctx context.Context, projectID, cardID string, update models.WorldviewCardUpdate) error {
	if update.IsEmpty() {
		return apperrors.ErrValidation
	}

	q := r.db.Querier(ctx)

	var exists int
	err := q.QueryRow(ctx, `
		SELECT 1 FROM worldview_cards wc
		JOIN worldview_groups wg ON wc.group_id = wg.id
		WHERE wc.id = $1 AND wg.project_id = $2`, cardID, projectID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify worldview card ownership: %w", err)
	}

	setClauses := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if update.Title != nil {
		args = append(args, *update.Title)
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Content != nil {
		args = append(args, *update.Content)
		setClauses = append(setClauses, fmt.Sprintf("content = $%d", len(args)))
	}
	args = append(args, cardID)

	query := fmt.Sprintf("UPDATE worldview_cards SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(args))
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update worldview card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *worldviewRepository) DeleteCard(ctx context.Context, projectID, cardID string) error {
	q := r.db.Querier(ctx)

	card, err := r.GetCardScoped(ctx, projectID, cardID)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `DELETE FROM worldview_cards WHERE id = $1`, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete worldview card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.reindexGroup(ctx, card.GroupID)
}

func (r *worldviewRepository) MoveCard(ctx context.Context, projectID, cardID, sourceGroupID, targetGroupID string) error {
	q := r.db.Querier(ctx)

	card, err := r.GetCardScoped(ctx, projectID, cardID)
	if err != nil {
		return err
	}
	if card.GroupID != sourceGroupID {
		return apperrors.ErrNotFound
	}

	var exists int
	err = q.QueryRow(ctx,
		`SELECT 1 FROM worldview_groups WHERE id = $1 AND project_id = $2`,
		targetGroupID, projectID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify target worldview group: %w", err)
	}

	var targetCount int
	if err := q.QueryRow(ctx, `SELECT COUNT(id) FROM worldview_cards WHERE group_id = $1`, targetGroupID).Scan(&targetCount); err != nil {
		return fmt.Errorf("failed to count target worldview cards: %w", err)
	}

	if _, err := q.Exec(ctx,
		`UPDATE worldview_cards SET group_id = $1, ordering = $2 WHERE id = $3`,
		targetGroupID, targetCount, cardID); err != nil {
		return fmt.Errorf("failed to move worldview card: %w", err)
	}

	return r.reindexGroup(ctx, sourceGroupID)
}

func (r *worldviewRepository) Reorder(ctx context.Context, projectID, groupID string, orderedIDs []string) error {
	q := r.db.Querier(ctx)

	var exists int
	err := q.QueryRow(ctx,
		`SELECT 1 FROM worldview_groups WHERE id = $1 AND project_id = $2`,
		groupID, projectID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify worldview group: %w", err)
	}

	members, err := r.groupMembers(ctx, groupID)
	if err != nil {
		return err
	}
	for _, change := range ordering.Apply(orderedIDs, members) {
		if _, err := q.Exec(ctx,
			`UPDATE worldview_cards SET ordering = $1 WHERE id = $2 AND group_id = $3`,
			change.Ordering, change.ID, groupID); err != nil {
			return fmt.Errorf("failed to apply worldview card ordering: %w", err)
		}
	}
	return nil
}

func (r *worldviewRepository) groupMembers(ctx context.Context, groupID string) ([]ordering.Member, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, ordering FROM worldview_cards WHERE group_id = $1 ORDER BY ordering`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load worldview card orderings: %w", err)
	}
	defer rows.Close()

	var members []ordering.Member
	for rows.Next() {
		var m ordering.Member
		if err := rows.Scan(&m.ID, &m.Ordering); err != nil {
			return nil, fmt.Errorf("failed to scan worldview card ordering: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *worldviewRepository) reindexGroup(ctx context.Context, groupID string) error {
	members, err := r.groupMembers(ctx, groupID)
	if err != nil {
		return err
	}
	q := r.db.Querier(ctx)
	for _, change := range ordering.Reindex(members) {
		if _, err := q.Exec(ctx,
			`UPDATE worldview_cards SET ordering = $1 WHERE id = $2 AND group_id = $3`,
			change.Ordering, change.ID, groupID); err != nil {
			return fmt.Errorf("failed to reindex worldview cards: %w", err)
		}
	}
	return nil
}

var _ WorldviewRepository = (*worldviewRepository)(nil)
