package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=admin dbname=licitaciones_espana")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, 100, cfg.Intel.ActiveTenderLimit)
	assert.Equal(t, 10, cfg.Intel.TopCompetitors)
	assert.Equal(t, 50, cfg.Intel.SearchLimit)
	assert.Equal(t, []string{"*"}, cfg.Intel.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=admin dbname=licitaciones_espana")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("INTEL_TOP_COMPETITORS", "20")
	t.Setenv("INTEL_ALLOWED_ORIGINS", "https://intel.example.gal, https://staging.example.gal")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Intel.TopCompetitors)
	assert.Equal(t, []string{"https://intel.example.gal", "https://staging.example.gal"}, cfg.Intel.AllowedOrigins)
}
