package guard

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/middleware"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

type contextKey string

const projectContextKey contextKey = "guardedProject"

// ProjectFromContext returns the project resolved by Middleware, or nil when
// the request did not pass through it.
func ProjectFromContext(ctx context.Context) *models.Project {
	project, _ := ctx.Value(projectContextKey).(*models.Project)
	return project
}

// WithProject stores a resolved project on the context. Exposed for tests.
func WithProject(ctx context.Context, project *models.Project) context.Context {
	return context.WithValue(ctx, projectContextKey, project)
}

// Middleware resolves the {projectID} path segment and enforces the project
// password before the handler runs. The resolved project is placed on the
// request context for handlers that need it.
func Middleware(lookup ProjectLookup, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			projectID := r.PathValue("projectID")
			if projectID == "" {
				_ = middleware.WriteError(w, http.StatusBadRequest, "invalid_request", "project id is required")
				return
			}

			project, err := ResolveProject(r.Context(), lookup, projectID, r.Header.Get(PasswordHeader))
			if err != nil {
				switch {
				case errors.Is(err, apperrors.ErrNotFound):
					_ = middleware.WriteError(w, http.StatusNotFound, "not_found", "project not found")
				case errors.Is(err, apperrors.ErrForbidden):
					_ = middleware.WriteError(w, http.StatusForbidden, "forbidden", "project password is missing or incorrect")
				default:
					logger.Error("failed to resolve project", zap.String("project_id", projectID), zap.Error(err))
					_ = middleware.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to resolve project")
				}
				return
			}

			next(w, r.WithContext(WithProject(r.Context(), project)))
		}
	}
}
