// Package guard implements the optional per-project password check. Every
// request independently supplies the password through the X-Project-Password
// header; there is no session state.
package guard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
)

// PasswordHeader carries the project password on protected requests.
const PasswordHeader = "X-Project-Password"

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ProjectLookup resolves a project by id. Satisfied by the project repository.
type ProjectLookup interface {
	Get(ctx context.Context, projectID string) (*models.Project, error)
}

// ResolveProject loads the project and enforces its password, if one is set.
// Returns apperrors.ErrNotFound when the project does not exist and
// apperrors.ErrForbidden when the password is missing or wrong. An
// unprotected project admits any caller.
func ResolveProject(ctx context.Context, lookup ProjectLookup, projectID, password string) (*models.Project, error) {
	project, err := lookup.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project %s: %w", projectID, err)
	}

	if !project.HasPassword() {
		return project, nil
	}
	if password == "" || !VerifyPassword(*project.PasswordHash, password) {
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}
