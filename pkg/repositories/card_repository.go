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

// CardRepository defines the interface for character-card data access. All
// lookups that cross the project boundary are scoped through the owning
// group so one project cannot reach another project's rows by guessing ids.
type CardRepository interface {
	// Create inserts the card appended at the end of its group.
	Create(ctx context.Context, card *models.Card) error
	GetScoped(ctx context.Context, projectID, cardID string) (*models.Card, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Card, error)
	ListByIDs(ctx context.Context, projectID string, ids []string) ([]models.Card, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Card, error)
	Update(ctx context.Context, projectID, cardID string, update models.CardUpdate) error
	// Delete removes the card and re-indexes its remaining siblings.
	Delete(ctx context.Context, projectID, groupID, cardID string) error
	// Move reassigns the card to targetGroupID, appending it at the end, and
	// re-indexes the source group.
	Move(ctx context.Context, projectID, cardID, sourceGroupID, targetGroupID string) error
	// Reorder applies an explicit id ordering within one group.
	Reorder(ctx context.Context, projectID, groupID string, orderedIDs []string) error
}

type cardRepository struct {
	db *database.DB
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *database.DB) CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = `id, group_id, name, description, goal, personality, abilities, quote, introduction_story, ordering`

func scanCard(row pgx.Row) (*models.Card, error) {
	var c models.Card
	var goal, personality, abilities, quote *string
	err := row.Scan(&c.ID, &c.GroupID, &c.Name, &c.Description,
		&goal, &personality, &abilities, &quote, &c.IntroductionStory, &c.Ordering)
	if err != nil {
		return nil, err
	}
	c.Goal = models.DecodeStringList(goal)
	c.Personality = models.DecodeStringList(personality)
	c.Abilities = models.DecodeStringList(abilities)
	c.Quote = models.DecodeStringList(quote)
	return &c, nil
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	q := r.db.Querier(ctx)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(id) FROM cards WHERE group_id = $1`, card.GroupID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count sibling cards: %w", err)
	}
	card.Ordering = &count

	query := `
		INSERT INTO cards (id, group_id, name, description, goal, personality, abilities, quote, introduction_story, ordering)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = q.Exec(ctx, query,
		card.ID, card.GroupID, card.Name, card.Description,
		models.EncodeStringList(card.Goal), models.EncodeStringList(card.Personality),
		models.EncodeStringList(card.Abilities), models.EncodeStringList(card.Quote),
		card.IntroductionStory, card.Ordering)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *cardRepository) GetScoped(ctx context.Context, projectID, cardID string) (*models.Card, error) {
	query := `
		SELECT c.` + cardColumnsAliased("c") + `
		FROM cards c
		JOIN groups g ON c.group_id = g.id
		WHERE c.id = $1 AND g.project_id = $2`

	card, err := scanCard(r.db.Querier(ctx).QueryRow(ctx, query, cardID, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

func (r *cardRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE group_id = $1 ORDER BY ordering`

	rows, err := r.db.Querier(ctx).Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()
	return collectCards(rows)
}

func (r *cardRepository) ListByIDs(ctx context.Context, projectID string, ids []string) ([]models.Card, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT c.` + cardColumnsAliased("c") + `
		FROM cards c
		JOIN groups g ON c.group_id = g.id
		WHERE g.project_id = $1 AND c.id = ANY($2)`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards by ids: %w", err)
	}
	defer rows.Close()
	return collectCards(rows)
}

func (r *cardRepository) ListByProject(ctx context.Context, projectID string) ([]models.Card, error) {
	query := `
		SELECT c.` + cardColumnsAliased("c") + `
		FROM cards c
		JOIN groups g ON c.group_id = g.id
		WHERE g.project_id = $1
		ORDER BY c.group_id, c.ordering`

	rows, err := r.db.Querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project cards: %w", err)
	}
	defer rows.Close()
	return collectCards(rows)
}

func collectCards(rows pgx.Rows) ([]models.Card, error) {
	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

// cardColumnsAliased prefixes every card column with the table alias.
func cardColumnsAliased(alias string) string {
	return alias + `.id, ` + alias + `.group_id, ` + alias + `.name, ` + alias + `.description, ` +
		alias + `.goal, ` + alias + `.personality, ` + alias + `.abilities, ` + alias + `.quote, ` +
		alias + `.introduction_story, ` + alias + `.ordering`
}

func (r *cardRepository) Update(ctx context.Context, projectID, cardID string, update models.CardUpdate) error {
	if update.IsEmpty() {
		return apperrors.ErrValidation
	}

	q := r.db.Querier(ctx)

	// Ownership check before the write so a wrong project id surfaces as
	// NotFound rather than silently matching zero rows.
	var exists int
	err := q.QueryRow(ctx, `
		SELECT 1 FROM cards c
		JOIN groups g ON c.group_id = g.id
		WHERE c.id = $1 AND g.project_id = $2`, cardID, projectID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify card ownership: %w", err)
	}

	setClauses := make([]string, 0, 7)
	args := make([]any, 0, 8)
	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Goal != nil {
		add("goal", models.EncodeStringList(*update.Goal))
	}
	if update.Personality != nil {
		add("personality", models.EncodeStringList(*update.Personality))
	}
	if update.Abilities != nil {
		add("abilities", models.EncodeStringList(*update.Abilities))
	}
	if update.Quote != nil {
		add("quote", models.EncodeStringList(*update.Quote))
	}
	if update.IntroductionStory != nil {
		add("introduction_story", *update.IntroductionStory)
	}

	args = append(args, cardID)
	query := fmt.Sprintf("UPDATE cards SET %s WHERE id = $%d", strings.Join(setClauses, ", "), len(args))

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, projectID, groupID, cardID string) error {
	q := r.db.Querier(ctx)

	tag, err := q.Exec(ctx, `
		DELETE FROM cards
		WHERE id = $1 AND group_id = $2
		  AND group_id IN (SELECT id FROM groups WHERE project_id = $3)`,
		cardID, groupID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.reindexGroup(ctx, groupID)
}

func (r *cardRepository) Move(ctx context.Context, projectID, cardID, sourceGroupID, targetGroupID string) error {
	q := r.db.Querier(ctx)

	// Both groups must belong to the project.
	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(id) FROM groups WHERE project_id = $1 AND id = ANY($2)`,
		projectID, []string{sourceGroupID, targetGroupID}).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to verify groups: %w", err)
	}
	want := 2
	if sourceGroupID == targetGroupID {
		want = 1
	}
	if count != want {
		return apperrors.ErrNotFound
	}

	var targetCount int
	if err := q.QueryRow(ctx, `SELECT COUNT(id) FROM cards WHERE group_id = $1`, targetGroupID).Scan(&targetCount); err != nil {
		return fmt.Errorf("failed to count target cards: %w", err)
	}

	tag, err := q.Exec(ctx,
		`UPDATE cards SET group_id = $1, ordering = $2 WHERE id = $3 AND group_id = $4`,
		targetGroupID, targetCount, cardID, sourceGroupID)
	if err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.reindexGroup(ctx, sourceGroupID)
}

func (r *cardRepository) Reorder(ctx context.Context, projectID, groupID string, orderedIDs []string) error {
	q := r.db.Querier(ctx)

	var exists int
	err := q.QueryRow(ctx, `SELECT 1 FROM groups WHERE id = $1 AND project_id = $2`, groupID, projectID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify group: %w", err)
	}

	members, err := r.groupMembers(ctx, groupID)
	if err != nil {
		return err
	}
	for _, change := range ordering.Apply(orderedIDs, members) {
		if _, err := q.Exec(ctx,
			`UPDATE cards SET ordering = $1 WHERE id = $2 AND group_id = $3`,
			change.Ordering, change.ID, groupID); err != nil {
			return fmt.Errorf("failed to apply card ordering: %w", err)
		}
	}
	return nil
}

func (r *cardRepository) groupMembers(ctx context.Context, groupID string) ([]ordering.Member, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, ordering FROM cards WHERE group_id = $1 ORDER BY ordering`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load card orderings: %w", err)
	}
	defer rows.Close()

	var members []ordering.Member
	for rows.Next() {
		var m ordering.Member
		if err := rows.Scan(&m.ID, &m.Ordering); err != nil {
			return nil, fmt.Errorf("failed to scan card ordering: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *cardRepository) reindexGroup(ctx context.Context, groupID string) error {
	members, err := r.groupMembers(ctx, groupID)
	if err != nil {
		return err
	}
	q := r.db.Querier(ctx)
	for _, change := range ordering.Reindex(members) {
		if _, err := q.Exec(ctx,
			`UPDATE cards SET ordering = $1 WHERE id = $2 AND group_id = $3`,
			change.Ordering, change.ID, groupID); err != nil {
			return fmt.Errorf("failed to reindex cards: %w", err)
		}
	}
	return nil
}

var _ CardRepository = (*cardRepository)(nil)
