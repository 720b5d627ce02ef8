package database

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/middleware"
)

// WithRequestTx creates middleware that wraps a handler in a single database
// transaction. The mutation and any sibling re-indexing it triggers therefore
// commit atomically: the transaction commits only when the handler responds
// with a non-error status, and rolls back otherwise.
//
// AI-backed routes are registered without this middleware so the external
// provider call never holds a transaction open; they persist results through
// DB.RunInTx instead.
func WithRequestTx(db *DB, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.Pool.Begin(r.Context())
			if err != nil {
				logger.Error("Failed to begin request transaction", zap.Error(err))
				_ = middleware.WriteError(w, http.StatusInternalServerError, "database_error", "Database connection error")
				return
			}

			wrapped := &txResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			ctx := SetTx(r.Context(), tx)

			next(wrapped, r.WithContext(ctx))

			if wrapped.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(ctx); err != nil {
					logger.Warn("Failed to roll back request transaction", zap.Error(err))
				}
				return
			}

			if err := tx.Commit(ctx); err != nil {
				logger.Error("Failed to commit request transaction", zap.Error(err))
			}
		}
	}
}

type txResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *txResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
