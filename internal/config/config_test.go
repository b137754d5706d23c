package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "coach.db", filepath.Base(cfg.Storage.Path))
	assert.Equal(t, 1000, cfg.Storage.MaxSessions)
	assert.Equal(t, 24*time.Hour, cfg.Storage.SessionTTL)
	assert.Equal(t, 50, cfg.Memory.MaxInteractions)
	assert.Equal(t, 100, cfg.Learner.MaxLog)
	assert.Equal(t, "local", cfg.Provider.Kind)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config { return *DefaultConfig() }

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "memory backend", mutate: func(c *Config) { c.Storage.Backend = "memory"; c.Storage.Path = "" }},
		{name: "bad backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }, wantErr: true, errMsg: "invalid storage backend"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage.Path = "" }, wantErr: true, errMsg: "storage path is required"},
		{name: "http provider", mutate: func(c *Config) { c.Provider.Kind = "http"; c.Provider.URL = "http://localhost:8080" }},
		{name: "http without url", mutate: func(c *Config) { c.Provider.Kind = "http" }, wantErr: true, errMsg: "provider url is required"},
		{name: "bad provider", mutate: func(c *Config) { c.Provider.Kind = "grpc" }, wantErr: true, errMsg: "invalid provider kind"},
		{name: "json logs", mutate: func(c *Config) { c.Log.Format = "json" }},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true, errMsg: "invalid log format"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true, errMsg: "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "coach.yaml")

	configContent := `
storage:
  backend: "memory"
  max_sessions: 10
  session_ttl: "2h"
memory:
  max_interactions: 20
learner:
  seed: 7
provider:
  kind: "http"
  url: "http://coach.local:9000"
  timeout: "5s"
log:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 10, cfg.Storage.MaxSessions)
	assert.Equal(t, 2*time.Hour, cfg.Storage.SessionTTL)
	assert.Equal(t, 20, cfg.Memory.MaxInteractions)
	assert.Equal(t, 100, cfg.Learner.MaxLog)
	assert.Equal(t, int64(7), cfg.Learner.Seed)
	assert.Equal(t, "http", cfg.Provider.Kind)
	assert.Equal(t, "http://coach.local:9000", cfg.Provider.URL)
	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithEnvVars(t *testing.T) {
	t.Setenv("COACH_STORAGE_BACKEND", "memory")
	t.Setenv("COACH_PROVIDER_API_KEY", "env-key")
	t.Setenv("COACH_DB", "/tmp/env-coach.db")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "coach.yaml")
	configContent := `
storage:
  backend: "sqlite"
log:
  level: "info"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Environment variables override the file
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "env-key", cfg.Provider.APIKey)
	assert.Equal(t, "/tmp/env-coach.db", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadExpandsHome(t *testing.T) {
	t.Setenv("COACH_STORAGE_PATH", "~/data/coach.db")
	path := filepath.Join(t.TempDir(), "coach.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "data", "coach.db"), cfg.Storage.Path)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("COACH_TEST_DOTENV=from-file\nCOACH_TEST_KEEP=from-file\n"), 0644))

	t.Setenv("COACH_TEST_DOTENV", "")
	os.Unsetenv("COACH_TEST_DOTENV")
	t.Setenv("COACH_TEST_KEEP", "from-env")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env.local"), envPath))

	assert.Equal(t, "from-file", os.Getenv("COACH_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("COACH_TEST_KEEP"))
}

func TestLoadDotEnvDisabled(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("COACH_TEST_DISABLED=set\n"), 0644))

	t.Setenv("COACH_DOTENV", "0")
	t.Setenv("COACH_TEST_DISABLED", "")
	os.Unsetenv("COACH_TEST_DISABLED")

	require.NoError(t, LoadDotEnv(envPath))
	_, ok := os.LookupEnv("COACH_TEST_DISABLED")
	assert.False(t, ok)
}
