package store

import (
	"context"
	"fmt"

	"github.com/rcliao/coach-engine/internal/model"
)

// Export returns the interactions of one session, or of every session when
// sessionID is empty, oldest first within each session.
func Export(ctx context.Context, st Store, sessionID string) ([]model.Interaction, error) {
	if sessionID != "" {
		return st.Interactions(ctx, sessionID)
	}

	sessions, err := st.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := []model.Interaction{}
	for _, ss := range sessions {
		ins, err := st.Interactions(ctx, ss.SessionID)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", ss.SessionID, err)
		}
		out = append(out, ins...)
	}
	return out, nil
}

// Import appends interactions from an export. Interactions whose ID is
// already stored in the same session are skipped.
func Import(ctx context.Context, st Store, interactions []model.Interaction, limit int) (int, error) {
	seen := map[string]map[string]bool{}
	imported := 0
	for _, in := range interactions {
		if in.SessionID == "" {
			return imported, fmt.Errorf("interaction %q has no session_id", in.ID)
		}

		ids, ok := seen[in.SessionID]
		if !ok {
			existing, err := st.Interactions(ctx, in.SessionID)
			if err != nil {
				return imported, err
			}
			ids = map[string]bool{}
			for _, e := range existing {
				ids[e.ID] = true
			}
			seen[in.SessionID] = ids
		}
		if in.ID != "" && ids[in.ID] {
			continue
		}

		if err := st.AppendInteraction(ctx, in, limit); err != nil {
			return imported, err
		}
		ids[in.ID] = true
		imported++
	}
	return imported, nil
}
