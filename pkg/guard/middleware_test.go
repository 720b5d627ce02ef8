package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

func serveGuarded(t *testing.T, lookup ProjectLookup, password string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	called := false
	handler := Middleware(lookup, zap.NewNop())(func(w http.ResponseWriter, r *http.Request) {
		called = true
		project := ProjectFromContext(r.Context())
		require.NotNil(t, project)
		w.WriteHeader(http.StatusOK)
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/{projectID}", handler)

	req := httptest.NewRequest(http.MethodGet, "/projects/p1", nil)
	if password != "" {
		req.Header.Set(PasswordHeader, password)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec, called
}

func TestMiddleware_UnprotectedProjectPasses(t *testing.T) {
	lookup := &stubLookup{project: &models.Project{ID: "p1"}}

	rec, called := serveGuarded(t, lookup, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestMiddleware_MissingPasswordForbidden(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	lookup := &stubLookup{project: &models.Project{ID: "p1", PasswordHash: &hash}}

	rec, called := serveGuarded(t, lookup, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "forbidden")
}

func TestMiddleware_CorrectPasswordPasses(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	lookup := &stubLookup{project: &models.Project{ID: "p1", PasswordHash: &hash}}

	rec, called := serveGuarded(t, lookup, "hunter2")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
