// Package store provides session storage interfaces with SQLite and
// in-memory implementations.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/coach-engine/internal/config"
	"github.com/rcliao/coach-engine/internal/model"
)

// ErrNotFound is returned when a session has no stored pattern.
var ErrNotFound = errors.New("not found")

// SessionSummary describes one stored session.
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	Interactions int       `json:"interactions"`
	HasPattern   bool      `json:"has_pattern"`
	LastActive   time.Time `json:"last_active"`
}

// InteractionStore persists the per-session interaction log.
type InteractionStore interface {
	// AppendInteraction stores in under in.SessionID, keeping only the
	// limit most recent interactions when limit > 0.
	AppendInteraction(ctx context.Context, in model.Interaction, limit int) error

	// Interactions returns a session's interactions, oldest first.
	Interactions(ctx context.Context, sessionID string) ([]model.Interaction, error)
}

// PatternStore persists learned user patterns.
type PatternStore interface {
	// GetPattern returns ErrNotFound when the session has no pattern.
	GetPattern(ctx context.Context, sessionID string) (*model.UserPattern, error)

	// PutPattern creates or replaces p.SessionID's pattern.
	PutPattern(ctx context.Context, p *model.UserPattern) error
}

// Store is the full session store used by the engine and CLI.
type Store interface {
	InteractionStore
	PatternStore

	// Sessions lists stored sessions, most recently active first.
	Sessions(ctx context.Context) ([]SessionSummary, error)

	// Search finds interactions whose messages contain the query.
	Search(ctx context.Context, p SearchParams) ([]model.Interaction, error)

	// DeleteSession removes a session's interactions and pattern.
	DeleteSession(ctx context.Context, sessionID string) error

	// Stats returns store statistics.
	Stats(ctx context.Context) (*Stats, error)

	// Close closes the store.
	Close() error
}

// Open creates the store selected by cfg.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "sqlite":
		s, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore(cfg.MaxSessions, cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
