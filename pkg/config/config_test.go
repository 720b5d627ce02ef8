package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModels(t *testing.T) {
	assert.Equal(t,
		[]string{"gemini-2.5-flash-lite", "gemini-2.5-flash"},
		parseModels("gemini-2.5-flash-lite, gemini-2.5-flash"))
	assert.Equal(t, []string{"one"}, parseModels("one,,  ,"))
	assert.Nil(t, parseModels(""))
}

func TestAIConfig_DefaultModel(t *testing.T) {
	cfg := AIConfig{Models: []string{"gemini-2.5-flash-lite", "gemini-2.5-pro"}}
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.DefaultModel())

	empty := AIConfig{}
	assert.Empty(t, empty.DefaultModel())
}

func TestAIConfig_AllowsModel(t *testing.T) {
	cfg := AIConfig{Models: []string{"gemini-2.5-flash-lite", "gemini-2.5-pro"}}

	assert.True(t, cfg.AllowsModel(""))
	assert.True(t, cfg.AllowsModel("gemini-2.5-pro"))
	assert.False(t, cfg.AllowsModel("gpt-4"))
}

func TestAIConfig_IsConfigured(t *testing.T) {
	assert.False(t, (&AIConfig{}).IsConfigured())
	assert.True(t, (&AIConfig{APIKey: "key"}).IsConfigured())
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	withURL := DatabaseConfig{URL: "postgres://u:p@db/app"}
	assert.Equal(t, "postgres://u:p@db/app", withURL.ConnectionString())

	fromParts := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "universe",
		Password: "secret", Database: "universe_builder", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=universe password=secret dbname=universe_builder sslmode=disable",
		fromParts.ConnectionString())
}
