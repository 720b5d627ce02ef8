package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/assembly"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/clone"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// mockProjectService implements services.ProjectService for handler tests.
type mockProjectService struct {
	view        *assembly.ProjectView
	views       []assembly.ProjectView
	project     *models.Project
	hasPassword bool
	valid       bool
	err         error

	createdName string
	setPassword string
}

func (m *mockProjectService) Create(ctx context.Context, name string) (*assembly.ProjectView, error) {
	m.createdName = name
	return m.view, m.err
}
func (m *mockProjectService) List(ctx context.Context) ([]assembly.ProjectView, error) {
	return m.views, m.err
}
func (m *mockProjectService) Get(ctx context.Context, projectID string) (*assembly.ProjectView, error) {
	return m.view, m.err
}
func (m *mockProjectService) UpdateName(ctx context.Context, projectID, name string) (*models.Project, error) {
	return m.project, m.err
}
func (m *mockProjectService) Delete(ctx context.Context, projectID string) error {
	return m.err
}
func (m *mockProjectService) Status(ctx context.Context, projectID string) (bool, error) {
	return m.hasPassword, m.err
}
func (m *mockProjectService) VerifyPassword(ctx context.Context, projectID, password string) (bool, error) {
	return m.valid, m.err
}
func (m *mockProjectService) SetPassword(ctx context.Context, projectID, newPassword string) error {
	m.setPassword = newPassword
	return m.err
}
func (m *mockProjectService) ImportSample(ctx context.Context, payload clone.SamplePayload) (*assembly.ProjectView, error) {
	return m.view, m.err
}

var _ services.ProjectService = (*mockProjectService)(nil)

func passthrough(next http.HandlerFunc) http.HandlerFunc { return next }

func newProjectMux(svc services.ProjectService) *http.ServeMux {
	mux := http.NewServeMux()
	NewProjectHandler(svc, zap.NewNop()).RegisterRoutes(mux, passthrough, passthrough)
	return mux
}

func TestProjectHandler_Create(t *testing.T) {
	svc := &mockProjectService{view: &assembly.ProjectView{ID: "p1", Name: "새 프로젝트"}}
	mux := newProjectMux(svc)

	body, _ := json.Marshal(CreateProjectRequest{Name: "새 프로젝트"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "새 프로젝트", svc.createdName)

	var view assembly.ProjectView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, "p1", view.ID)
}

func TestProjectHandler_Create_InvalidBody(t *testing.T) {
	mux := newProjectMux(&mockProjectService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_request")
}

func TestProjectHandler_Create_ValidationError(t *testing.T) {
	mux := newProjectMux(&mockProjectService{err: apperrors.ErrValidation})

	body, _ := json.Marshal(CreateProjectRequest{Name: ""})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestProjectHandler_Get_NotFound(t *testing.T) {
	mux := newProjectMux(&mockProjectService{err: apperrors.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestProjectHandler_List(t *testing.T) {
	svc := &mockProjectService{views: []assembly.ProjectView{{ID: "p1"}, {ID: "p2"}}}
	mux := newProjectMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Projects []assembly.ProjectView `json:"projects"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Len(t, response.Projects, 2)
}

func TestProjectHandler_Status(t *testing.T) {
	mux := newProjectMux(&mockProjectService{hasPassword: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/p1/status", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response ProjectStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.HasPassword)
}

func TestProjectHandler_VerifyPassword(t *testing.T) {
	mux := newProjectMux(&mockProjectService{valid: true})

	body, _ := json.Marshal(VerifyPasswordRequest{Password: "hunter2"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/p1/verify-password", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response VerifyPasswordResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Valid)
}

func TestProjectHandler_SetPassword(t *testing.T) {
	svc := &mockProjectService{}
	mux := newProjectMux(svc)

	body, _ := json.Marshal(SetPasswordRequest{NewPassword: "new-secret"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/p1/password", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "new-secret", svc.setPassword)
}

func TestProjectHandler_Delete(t *testing.T) {
	mux := newProjectMux(&mockProjectService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/projects/p1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProjectHandler_InternalErrorIs500(t *testing.T) {
	mux := newProjectMux(&mockProjectService{err: errors.New("connection lost")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "list_projects_failed")
}
