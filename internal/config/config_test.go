package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TASKBOARD_CONFIG", "DATABASE_URL", "REPORT_INTERVAL_HOURS", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "taskboard.db", cfg.DatabaseURL)
	assert.Equal(t, 5*time.Hour, cfg.ReportInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "board.toml")
	content := `database_url = "data/board.db"
report_interval = "30m"
log_level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("TASKBOARD_CONFIG", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data/board.db", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.ReportInterval)
	assert.Equal(t, "warn", cfg.LogLevel, "environment overrides the file")
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	clearEnv(t)

	require.NoError(t, os.WriteFile(defaultConfigFile, []byte(`database_url = "local.db"`), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local.db", cfg.DatabaseURL)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKBOARD_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_BadInterval(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte(`report_interval = "soon"`), 0o600))
	t.Setenv("TASKBOARD_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestParseInterval(t *testing.T) {
	assert.Equal(t, 2*time.Hour, parseInterval("2"))
	assert.Equal(t, time.Duration(0), parseInterval(""))
	assert.Equal(t, time.Duration(0), parseInterval("-1"))
	assert.Equal(t, time.Duration(0), parseInterval("abc"))
}
