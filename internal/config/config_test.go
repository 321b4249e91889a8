package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigcompany-analysis/internal/apperror"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ANALYZER_SOURCE", "ANALYZER_FILE", "ANALYZER_FORMAT", "APP_PORT", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourceCSV, cfg.Source)
	assert.Equal(t, DefaultFile, cfg.FilePath)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANALYZER_SOURCE", " Postgres ")
	t.Setenv("ANALYZER_FORMAT", "JSON")
	t.Setenv("DATABASE_URL", "postgres://localhost/org")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourcePostgres, cfg.Source)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "9090", cfg.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANALYZER_SOURCE", "excel")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, apperror.CodeConfig, apperror.GetCode(err))
}

func TestValidatePostgresRequiresDatabaseURL(t *testing.T) {
	cfg := Config{Source: SourcePostgres, Format: FormatText, Port: DefaultPort}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, apperror.CodeConfig, apperror.GetCode(err))
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	cfg := Config{Source: SourceCSV, FilePath: "a.csv", Format: "yaml", Port: DefaultPort}
	assert.Equal(t, apperror.CodeConfig, apperror.GetCode(cfg.Validate()))
}
