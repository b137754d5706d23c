// Package cli implements the coach-engine CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rcliao/coach-engine/internal/config"
	"github.com/rcliao/coach-engine/internal/conversation"
	"github.com/rcliao/coach-engine/internal/engine"
	"github.com/rcliao/coach-engine/internal/learner"
	"github.com/rcliao/coach-engine/internal/logging"
	"github.com/rcliao/coach-engine/internal/provider"
	"github.com/rcliao/coach-engine/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "coach-engine",
	Short: "Adaptive conversational fitness coach",
	Long:  "Analyzes coaching messages, learns per-session preferences and personalizes responses. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $COACH_DB or ~/.coach-engine/coach.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./coach.yaml or ~/.config/coach-engine/coach.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func loadConfig() *config.Config {
	if err := config.LoadDotEnv(); err != nil {
		exitErr("load .env", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.Storage.Backend = "sqlite"
		cfg.Storage.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		exitErr("invalid config", err)
	}
	return cfg
}

func openStore(cfg *config.Config) store.Store {
	s, err := store.Open(cfg.Storage)
	if err != nil {
		exitErr("open store", err)
	}
	return s
}

// app bundles the components a command needs over one open store.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   store.Store
	memory  *conversation.Memory
	learner *learner.Learner
}

func openApp() *app {
	cfg := loadConfig()
	logger := logging.New(cfg.Log)
	st := openStore(cfg)

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		memory:  conversation.New(st, cfg.Memory.MaxInteractions, logger),
		learner: learner.New(st, logger, learner.Options{
			MaxLog:  cfg.Learner.MaxLog,
			Chooser: learner.NewRandomChooser(cfg.Learner.Seed),
		}),
	}
}

func (a *app) engine() *engine.Engine {
	p, err := provider.NewFromConfig(a.cfg.Provider)
	if err != nil {
		exitErr("provider", err)
	}
	return engine.New(p, a.memory, a.learner, a.logger, engine.Options{})
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("close store")
	}
}

func textOutput() bool {
	return formatFlag == "text"
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
