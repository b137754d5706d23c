package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/coach-engine/internal/config"
	"github.com/rcliao/coach-engine/internal/model"
)

func TestMemoryStoreEvictsLeastRecentSession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2, 0)
	now := time.Now()

	s.AppendInteraction(ctx, interaction("a", "one", now), 50)
	s.AppendInteraction(ctx, interaction("b", "two", now), 50)
	// Touch a so b becomes least recently used
	s.Interactions(ctx, "a")
	s.AppendInteraction(ctx, interaction("c", "three", now), 50)

	if got, _ := s.Interactions(ctx, "b"); len(got) != 0 {
		t.Errorf("expected b evicted, got %d interactions", len(got))
	}
	if got, _ := s.Interactions(ctx, "a"); len(got) != 1 {
		t.Errorf("expected a retained, got %d interactions", len(got))
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0, 50*time.Millisecond)
	s.PutPattern(ctx, model.NewUserPattern("a", time.Now()))

	time.Sleep(120 * time.Millisecond)

	sessions, _ := s.Sessions(ctx)
	if len(sessions) != 0 {
		t.Errorf("expected expired session, got %+v", sessions)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0, 0)
	in := interaction("a", "squat", time.Now())
	in.Entities = []model.Entity{{Kind: model.KindExercise, Value: "squat"}}
	s.AppendInteraction(ctx, in, 50)

	got, _ := s.Interactions(ctx, "a")
	got[0].Entities[0].Value = "mutated"
	got[0].UserMessage = "mutated"

	again, _ := s.Interactions(ctx, "a")
	if again[0].UserMessage != "squat" || again[0].Entities[0].Value != "squat" {
		t.Errorf("store state leaked to caller: %+v", again[0])
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(config.StorageConfig{Backend: "memory", MaxSessions: 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", s)
	}
	s.Close()

	s, err = Open(config.StorageConfig{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "coach.db")})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("expected *SQLiteStore, got %T", s)
	}
	s.Close()

	if _, err := Open(config.StorageConfig{Backend: "redis"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestMemoryStoreClose(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0, time.Hour)
	s.AppendInteraction(ctx, interaction("a", "squat", time.Now()), 50)

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}

	if got, _ := s.Interactions(ctx, "a"); len(got) != 0 {
		t.Errorf("expected purged session, got %d interactions", len(got))
	}
	if err := s.AppendInteraction(ctx, interaction("a", "lunge", time.Now()), 50); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on append, got %v", err)
	}
	if err := s.PutPattern(ctx, model.NewUserPattern("a", time.Now())); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on put, got %v", err)
	}
}
