// Package config loads coach-engine configuration from .env files, an
// optional YAML file, and COACH_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Memory   MemoryConfig   `mapstructure:"memory"`
	Learner  LearnerConfig  `mapstructure:"learner"`
	Provider ProviderConfig `mapstructure:"provider"`
	Log      LogConfig      `mapstructure:"log"`
}

// StorageConfig selects and sizes the session store.
type StorageConfig struct {
	Backend     string        `mapstructure:"backend"` // sqlite, memory
	Path        string        `mapstructure:"path"`
	MaxSessions int           `mapstructure:"max_sessions"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
}

// MemoryConfig holds conversation memory settings.
type MemoryConfig struct {
	MaxInteractions int `mapstructure:"max_interactions"`
}

// LearnerConfig holds pattern learner settings.
type LearnerConfig struct {
	MaxLog int   `mapstructure:"max_log"`
	Seed   int64 `mapstructure:"seed"` // 0 seeds from the clock
}

// ProviderConfig selects the base recommendation provider.
type ProviderConfig struct {
	Kind    string        `mapstructure:"kind"` // local, http
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console, json
}

// DefaultConfig returns a new configuration with default values.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Storage: StorageConfig{
			Backend:     "sqlite",
			Path:        filepath.Join(home, ".coach-engine", "coach.db"),
			MaxSessions: 1000,
			SessionTTL:  24 * time.Hour,
		},
		Memory: MemoryConfig{
			MaxInteractions: 50,
		},
		Learner: LearnerConfig{
			MaxLog: 100,
		},
		Provider: ProviderConfig{
			Kind:    "local",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads configuration from configPath, or from coach.yaml in the
// working directory or ~/.config/coach-engine when configPath is empty.
// Environment variables such as COACH_STORAGE_PATH override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("COACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// COACH_DB is shorthand for COACH_STORAGE_PATH
	v.BindEnv("storage.path", "COACH_DB", "COACH_STORAGE_PATH")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("coach")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/coach-engine")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path)

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the sqlite backend")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid storage backend: %s (must be sqlite or memory)", c.Storage.Backend)
	}

	switch c.Provider.Kind {
	case "local":
	case "http":
		if c.Provider.URL == "" {
			return fmt.Errorf("provider url is required for the http provider")
		}
	default:
		return fmt.Errorf("invalid provider kind: %s (must be local or http)", c.Provider.Kind)
	}

	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be console or json)", c.Log.Format)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// LoadDotEnv loads the given files, or .env.local then .env from the
// working directory when none are given. Variables already set are kept.
// Missing files are skipped and COACH_DOTENV=0 disables loading.
func LoadDotEnv(paths ...string) error {
	if dotEnvDisabled() {
		return nil
	}
	if len(paths) == 0 {
		paths = []string{".env.local", ".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func dotEnvDisabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("COACH_DOTENV"))) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("storage.max_sessions", defaults.Storage.MaxSessions)
	v.SetDefault("storage.session_ttl", defaults.Storage.SessionTTL)
	v.SetDefault("memory.max_interactions", defaults.Memory.MaxInteractions)
	v.SetDefault("learner.max_log", defaults.Learner.MaxLog)
	v.SetDefault("learner.seed", defaults.Learner.Seed)
	v.SetDefault("provider.kind", defaults.Provider.Kind)
	v.SetDefault("provider.url", defaults.Provider.URL)
	v.SetDefault("provider.api_key", defaults.Provider.APIKey)
	v.SetDefault("provider.timeout", defaults.Provider.Timeout)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}
