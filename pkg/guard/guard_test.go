package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

type stubLookup struct {
	project *models.Project
	err     error
}

func (s *stubLookup) Get(ctx context.Context, projectID string) (*models.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.project, nil
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret-1234")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-1234", hash)

	assert.True(t, VerifyPassword(hash, "secret-1234"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestResolveProject_Unprotected(t *testing.T) {
	lookup := &stubLookup{project: &models.Project{ID: "p1", Name: "open"}}

	project, err := ResolveProject(context.Background(), lookup, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, "p1", project.ID)
}

func TestResolveProject_ProtectedRequiresPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	lookup := &stubLookup{project: &models.Project{ID: "p1", PasswordHash: &hash}}

	_, err = ResolveProject(context.Background(), lookup, "p1", "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = ResolveProject(context.Background(), lookup, "p1", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	project, err := ResolveProject(context.Background(), lookup, "p1", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "p1", project.ID)
}

func TestResolveProject_NotFound(t *testing.T) {
	lookup := &stubLookup{err: apperrors.ErrNotFound}

	_, err := ResolveProject(context.Background(), lookup, "missing", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResolveProject_LookupFailureIsWrapped(t *testing.T) {
	boom := errors.New("connection lost")
	lookup := &stubLookup{err: boom}

	_, err := ResolveProject(context.Background(), lookup, "p1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
