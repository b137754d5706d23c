package store

import (
	"context"
	"testing"
	"time"

	"github.com/rcliao/coach-engine/internal/model"
)

func TestSearch_Basic(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

		s.AppendInteraction(ctx, interaction("s1", "How many sets for chest?", base), 50)
		s.AppendInteraction(ctx, interaction("s1", "Best chest exercise?", base.Add(time.Minute)), 50)
		s.AppendInteraction(ctx, interaction("s2", "I ate oats", base.Add(2*time.Minute)), 50)

		// Case-insensitive substring
		results, err := s.Search(ctx, SearchParams{Query: "CHEST"})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].UserMessage != "Best chest exercise?" {
			t.Errorf("expected newest first, got %q", results[0].UserMessage)
		}

		// Response text is searched too
		results, _ = s.Search(ctx, SearchParams{Query: "reply to I ate"})
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}

		// Session filter
		results, _ = s.Search(ctx, SearchParams{SessionID: "s2", Query: "chest"})
		if len(results) != 0 {
			t.Fatalf("expected 0 results, got %d", len(results))
		}

		// No results
		results, err = s.Search(ctx, SearchParams{Query: "javascript"})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 0 {
			t.Fatalf("expected 0 results, got %d", len(results))
		}
	})
}

func TestSearch_IntentAndLimit(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

		for i := 0; i < 5; i++ {
			s.AppendInteraction(ctx, interaction("s1", "squat day", base.Add(time.Duration(i)*time.Minute)), 50)
		}
		food := interaction("s1", "squat then eat", base.Add(time.Hour))
		food.Intent = "track_food"
		s.AppendInteraction(ctx, food, 50)

		results, _ := s.Search(ctx, SearchParams{Query: "squat", Intent: "track_food"})
		if len(results) != 1 || results[0].Intent != "track_food" {
			t.Fatalf("expected 1 track_food result, got %+v", results)
		}

		results, _ = s.Search(ctx, SearchParams{Query: "squat", Limit: 3})
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
	})
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	src.AppendInteraction(ctx, interaction("a", "alpha", base), 50)
	src.AppendInteraction(ctx, interaction("a", "beta", base.Add(time.Minute)), 50)
	src.AppendInteraction(ctx, interaction("b", "gamma", base.Add(2*time.Minute)), 50)

	exported, err := Export(ctx, src, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(exported) != 3 {
		t.Fatalf("expected 3 exported, got %d", len(exported))
	}

	one, _ := Export(ctx, src, "a")
	if len(one) != 2 {
		t.Fatalf("expected 2 exported for a, got %d", len(one))
	}

	dst := NewMemoryStore(0, 0)
	n, err := Import(ctx, dst, exported, 50)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 imported, got %d", n)
	}

	// Re-importing the same export is a no-op
	n, err = Import(ctx, dst, exported, 50)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected 0 re-imported, got %d", n)
	}

	got, _ := dst.Interactions(ctx, "a")
	if len(got) != 2 || got[0].UserMessage != "alpha" {
		t.Fatalf("unexpected imported interactions: %+v", got)
	}
	if got[0].ID != one[0].ID {
		t.Errorf("expected ID preserved, got %s", got[0].ID)
	}
}

func TestImportRequiresSession(t *testing.T) {
	_, err := Import(context.Background(), NewMemoryStore(0, 0), []model.Interaction{{UserMessage: "orphan"}}, 50)
	if err == nil {
		t.Fatal("expected error for interaction without session_id")
	}
}
