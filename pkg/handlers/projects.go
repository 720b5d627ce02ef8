package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/clone"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// CreateProjectRequest for POST /api/v1/projects
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// UpdateProjectRequest for PUT /api/v1/projects/{projectID}
type UpdateProjectRequest struct {
	Name string `json:"name"`
}

// VerifyPasswordRequest for POST /api/v1/projects/{projectID}/verify-password
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// SetPasswordRequest for PUT /api/v1/projects/{projectID}/password
type SetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ProjectStatusResponse for GET /api/v1/projects/{projectID}/status
type ProjectStatusResponse struct {
	HasPassword bool `json:"has_password"`
}

// VerifyPasswordResponse for POST /api/v1/projects/{projectID}/verify-password
type VerifyPasswordResponse struct {
	Valid bool `json:"valid"`
}

// ProjectHandler handles project lifecycle and password guard requests.
type ProjectHandler struct {
	projects services.ProjectService
	logger   *zap.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projects services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// RegisterRoutes registers the project routes. guardMW resolves the project
// and checks the password header; txMW wraps the request in a transaction.
func (h *ProjectHandler) RegisterRoutes(mux *http.ServeMux, guardMW, txMW Middleware) {
	base := "/api/v1/projects"

	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, chain(h.Create, txMW))
	mux.HandleFunc("POST "+base+"/import-sample", chain(h.ImportSample, txMW))
	mux.HandleFunc("GET "+base+"/{projectID}", chain(h.Get, guardMW))
	mux.HandleFunc("PUT "+base+"/{projectID}", chain(h.Update, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/{projectID}", chain(h.Delete, guardMW, txMW))

	// The status and verify endpoints stay outside the guard so clients can
	// discover that a password is needed.
	mux.HandleFunc("GET "+base+"/{projectID}/status", h.Status)
	mux.HandleFunc("POST "+base+"/{projectID}/verify-password", h.VerifyPassword)
	mux.HandleFunc("PUT "+base+"/{projectID}/password", chain(h.SetPassword, guardMW, txMW))
}

// List handles GET /api/v1/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.projects.List(r.Context())
	if err != nil {
		HandleError(w, h.logger, err, "list_projects_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, map[string]any{"projects": views}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	view, err := h.projects.Create(r.Context(), req.Name)
	if err != nil {
		HandleError(w, h.logger, err, "create_project_failed")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, view); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/projects/{projectID}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.projects.Get(r.Context(), r.PathValue("projectID"))
	if err != nil {
		HandleError(w, h.logger, err, "get_project_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, view); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/projects/{projectID}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	project, err := h.projects.UpdateName(r.Context(), r.PathValue("projectID"), req.Name)
	if err != nil {
		HandleError(w, h.logger, err, "update_project_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/projects/{projectID}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), r.PathValue("projectID")); err != nil {
		HandleError(w, h.logger, err, "delete_project_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status handles GET /api/v1/projects/{projectID}/status
func (h *ProjectHandler) Status(w http.ResponseWriter, r *http.Request) {
	hasPassword, err := h.projects.Status(r.Context(), r.PathValue("projectID"))
	if err != nil {
		HandleError(w, h.logger, err, "project_status_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, ProjectStatusResponse{HasPassword: hasPassword}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// VerifyPassword handles POST /api/v1/projects/{projectID}/verify-password
func (h *ProjectHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req VerifyPasswordRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	valid, err := h.projects.VerifyPassword(r.Context(), r.PathValue("projectID"), req.Password)
	if err != nil {
		HandleError(w, h.logger, err, "verify_password_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, VerifyPasswordResponse{Valid: valid}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SetPassword handles PUT /api/v1/projects/{projectID}/password. The guard
// already checked the current password; an empty new password clears it.
func (h *ProjectHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req SetPasswordRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	if err := h.projects.SetPassword(r.Context(), r.PathValue("projectID"), req.NewPassword); err != nil {
		HandleError(w, h.logger, err, "set_password_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportSample handles POST /api/v1/projects/import-sample
func (h *ProjectHandler) ImportSample(w http.ResponseWriter, r *http.Request) {
	var payload clone.SamplePayload
	if !DecodeJSON(w, r, h.logger, &payload) {
		return
	}

	view, err := h.projects.ImportSample(r.Context(), payload)
	if err != nil {
		HandleError(w, h.logger, err, "import_sample_failed")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, view); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
