package models

import "time"

// Names of the default child rows every project owns. The uncategorized group
// cannot be deleted, and the default scenario is recreated on first access if
// a project somehow lost it.
const (
	UncategorizedGroupName = "미분류"
	DefaultScenarioTitle   = "메인 시나리오"
)

// Project is the root of the ownership tree. All descendant rows are removed
// by cascade when the project is deleted.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPassword reports whether the project is password-protected.
func (p *Project) HasPassword() bool {
	return p.PasswordHash != nil && *p.PasswordHash != ""
}

// Group is a named bucket of character cards within a project.
type Group struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

// IsUncategorized reports whether this is the undeletable default group.
func (g *Group) IsUncategorized() bool {
	return g.Name == UncategorizedGroupName
}
