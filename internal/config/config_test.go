package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("EXPORT_PATH", "")
	t.Setenv("CORR_ABOVE", "")
	t.Setenv("CORR_BELOW", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "./data/firenzecard.db", cfg.DBPath)
	assert.Empty(t, cfg.ExportPath)
	assert.InDelta(t, 0.5, cfg.CorrAbove, 1e-9)
	assert.InDelta(t, -0.5, cfg.CorrBelow, 1e-9)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("EXPORT_PATH", "/tmp/export/run1")
	t.Setenv("CORR_ABOVE", "0.7")
	t.Setenv("CORR_BELOW", "not-a-number")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "/tmp/export/run1", cfg.ExportPath)
	assert.InDelta(t, 0.7, cfg.CorrAbove, 1e-9)
	// Unparseable values fall back to the default.
	assert.InDelta(t, -0.5, cfg.CorrBelow, 1e-9)
}
