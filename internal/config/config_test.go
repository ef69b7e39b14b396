package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, ":3000", cfg.RESTAddr)
	assert.Equal(t, ":4000", cfg.GraphQLAddr)
	assert.False(t, cfg.Environment.IsProduction())
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("REST_ADDR", ":8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Environment.IsProduction())
	assert.Equal(t, ":8080", cfg.RESTAddr)
}
