package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_HasPassword(t *testing.T) {
	assert.False(t, (&Project{}).HasPassword())
	assert.False(t, (&Project{PasswordHash: strPtr("")}).HasPassword())
	assert.True(t, (&Project{PasswordHash: strPtr("$2a$10$hash")}).HasPassword())
}

func TestGroup_IsUncategorized(t *testing.T) {
	assert.True(t, (&Group{Name: UncategorizedGroupName}).IsUncategorized())
	assert.False(t, (&Group{Name: "주연"}).IsUncategorized())
}
