// Package conversation keeps the per-session interaction log and derives
// satisfaction and intent trends from it.
package conversation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rcliao/coach-engine/internal/model"
	"github.com/rcliao/coach-engine/internal/store"
)

// DefaultLimit is the number of interactions kept per session.
const DefaultLimit = 50

// maxTopIntents bounds Trends.TopIntents.
const maxTopIntents = 5

// IntentCount is one ranked intent in Trends.
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

// Trends summarizes a session's history.
type Trends struct {
	AvgSatisfaction        float64       `json:"avg_satisfaction"`
	TopIntents             []IntentCount `json:"top_intents"`
	MoodSequence           []string      `json:"mood_sequence"`
	LowSatisfactionIntents []string      `json:"low_satisfaction_intents"`
}

// Memory records interactions per session with bounded retention.
type Memory struct {
	store  store.InteractionStore
	limit  int
	logger zerolog.Logger
}

// New creates a Memory over st. A limit <= 0 uses DefaultLimit.
func New(st store.InteractionStore, limit int, logger zerolog.Logger) *Memory {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Memory{
		store:  st,
		limit:  limit,
		logger: logger.With().Str("component", "conversation").Logger(),
	}
}

// Limit returns the per-session retention cap.
func (m *Memory) Limit() int { return m.limit }

// Record appends in to the session log, evicting the oldest entries beyond
// the retention cap.
func (m *Memory) Record(ctx context.Context, sessionID string, in model.Interaction) error {
	in.SessionID = sessionID
	if err := m.store.AppendInteraction(ctx, in, m.limit); err != nil {
		return fmt.Errorf("record interaction: %w", err)
	}
	return nil
}

// History returns the session log, oldest first. Storage errors are logged
// and yield an empty history.
func (m *Memory) History(ctx context.Context, sessionID string) []model.Interaction {
	ins, err := m.store.Interactions(ctx, sessionID)
	if err != nil {
		m.logger.Error().Err(err).Str("session_id", sessionID).Msg("load history")
		return []model.Interaction{}
	}
	return ins
}

// RecentContext returns the last n interactions, oldest first.
func (m *Memory) RecentContext(ctx context.Context, sessionID string, n int) []model.Interaction {
	ins := m.History(ctx, sessionID)
	if n <= 0 {
		return []model.Interaction{}
	}
	if len(ins) > n {
		ins = ins[len(ins)-n:]
	}
	return ins
}

// Trends aggregates the session history. An empty history yields an
// average satisfaction of 0.5 and empty lists.
func (m *Memory) Trends(ctx context.Context, sessionID string) Trends {
	return Summarize(m.History(ctx, sessionID))
}

// Summarize computes Trends over an interaction log.
func Summarize(ins []model.Interaction) Trends {
	t := Trends{
		AvgSatisfaction:        0.5,
		TopIntents:             []IntentCount{},
		MoodSequence:           []string{},
		LowSatisfactionIntents: []string{},
	}
	if len(ins) == 0 {
		return t
	}

	var sum float64
	counts := map[string]int{}
	var order []string
	lowSeen := map[string]bool{}

	for _, in := range ins {
		sum += in.Satisfaction
		if _, ok := counts[in.Intent]; !ok {
			order = append(order, in.Intent)
		}
		counts[in.Intent]++
		t.MoodSequence = append(t.MoodSequence, in.Mood)

		if in.Satisfaction < 0.5 && !lowSeen[in.Intent] {
			lowSeen[in.Intent] = true
			t.LowSatisfactionIntents = append(t.LowSatisfactionIntents, in.Intent)
		}
	}
	t.AvgSatisfaction = sum / float64(len(ins))

	for _, intent := range order {
		t.TopIntents = append(t.TopIntents, IntentCount{Intent: intent, Count: counts[intent]})
	}
	sort.SliceStable(t.TopIntents, func(i, j int) bool {
		return t.TopIntents[i].Count > t.TopIntents[j].Count
	})
	if len(t.TopIntents) > maxTopIntents {
		t.TopIntents = t.TopIntents[:maxTopIntents]
	}

	return t
}
