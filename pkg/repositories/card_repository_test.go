package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/database"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/ident"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

// These tests need a real PostgreSQL instance; set TEST_DATABASE_URL to run
// them. They migrate the schema and clean up the rows they create.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	migDB, err := sql.Open("pgx", url)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(migDB, "../../migrations", zap.NewNop()))
	require.NoError(t, migDB.Close())

	db, err := database.NewConnection(context.Background(), &database.Config{URL: url})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func seedProject(t *testing.T, db *database.DB) string {
	t.Helper()
	ctx := context.Background()

	projects := NewProjectRepository(db)
	project := &models.Project{ID: ident.New("project"), Name: "통합 테스트"}
	require.NoError(t, projects.Create(ctx, project))
	t.Cleanup(func() {
		_ = projects.Delete(context.Background(), project.ID)
	})
	return project.ID
}

func seedGroup(t *testing.T, db *database.DB, projectID, name string) string {
	t.Helper()

	groups := NewGroupRepository(db)
	group := &models.Group{ID: ident.New("group"), ProjectID: projectID, Name: name}
	require.NoError(t, groups.Create(context.Background(), group))
	return group.ID
}

func seedCard(t *testing.T, repo CardRepository, groupID, name string) string {
	t.Helper()

	card := &models.Card{ID: ident.New("card"), GroupID: groupID, Name: name}
	require.NoError(t, repo.Create(context.Background(), card))
	return card.ID
}

func TestCardRepository_CreateAppendsAtEnd(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	projectID := seedProject(t, db)
	groupID := seedGroup(t, db, projectID, "주연")
	repo := NewCardRepository(db)

	seedCard(t, repo, groupID, "엘라라")
	seedCard(t, repo, groupID, "카엘")

	cards, err := repo.ListByGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, 0, *cards[0].Ordering)
	assert.Equal(t, 1, *cards[1].Ordering)
}

func TestCardRepository_DeleteReindexesSiblings(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	projectID := seedProject(t, db)
	groupID := seedGroup(t, db, projectID, "주연")
	repo := NewCardRepository(db)

	first := seedCard(t, repo, groupID, "첫째")
	middle := seedCard(t, repo, groupID, "둘째")
	last := seedCard(t, repo, groupID, "셋째")

	require.NoError(t, repo.Delete(ctx, projectID, groupID, middle))

	cards, err := repo.ListByGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, first, cards[0].ID)
	assert.Equal(t, 0, *cards[0].Ordering)
	assert.Equal(t, last, cards[1].ID)
	assert.Equal(t, 1, *cards[1].Ordering)
}

func TestCardRepository_ScopedAccessStopsAtProjectBoundary(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewCardRepository(db)

	ownerID := seedProject(t, db)
	groupID := seedGroup(t, db, ownerID, "주연")
	cardID := seedCard(t, repo, groupID, "엘라라")

	otherID := seedProject(t, db)

	_, err := repo.GetScoped(ctx, otherID, cardID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	name := "탈취 시도"
	err = repo.Update(ctx, otherID, cardID, models.CardUpdate{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = repo.Delete(ctx, otherID, groupID, cardID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The card is untouched in its own project.
	card, err := repo.GetScoped(ctx, ownerID, cardID)
	require.NoError(t, err)
	assert.Equal(t, "엘라라", card.Name)
}

func TestCardRepository_MoveAppendsToTargetAndReindexesSource(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	projectID := seedProject(t, db)
	sourceID := seedGroup(t, db, projectID, "주연")
	targetID := seedGroup(t, db, projectID, "조연")
	repo := NewCardRepository(db)

	moved := seedCard(t, repo, sourceID, "이동 대상")
	stays := seedCard(t, repo, sourceID, "잔류")
	seedCard(t, repo, targetID, "기존 조연")

	require.NoError(t, repo.Move(ctx, projectID, moved, sourceID, targetID))

	source, err := repo.ListByGroup(ctx, sourceID)
	require.NoError(t, err)
	require.Len(t, source, 1)
	assert.Equal(t, stays, source[0].ID)
	assert.Equal(t, 0, *source[0].Ordering)

	target, err := repo.ListByGroup(ctx, targetID)
	require.NoError(t, err)
	require.Len(t, target, 2)
	assert.Equal(t, moved, target[1].ID)
	assert.Equal(t, 1, *target[1].Ordering)
}

func TestCardRepository_ReorderAppliesClientOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	projectID := seedProject(t, db)
	groupID := seedGroup(t, db, projectID, "주연")
	repo := NewCardRepository(db)

	a := seedCard(t, repo, groupID, "가")
	b := seedCard(t, repo, groupID, "나")
	c := seedCard(t, repo, groupID, "다")

	require.NoError(t, repo.Reorder(ctx, projectID, groupID, []string{c, a, b}))

	cards, err := repo.ListByGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, []string{c, a, b}, []string{cards[0].ID, cards[1].ID, cards[2].ID})
}
