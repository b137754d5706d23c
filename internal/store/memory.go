package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rcliao/coach-engine/internal/model"
)

type sessionState struct {
	interactions []model.Interaction
	pattern      *model.UserPattern
	lastActive   time.Time
}

// ErrClosed is returned by writes to a closed MemoryStore.
var ErrClosed = errors.New("store closed")

// MemoryStore implements Store in process memory. Sessions beyond
// maxSessions are evicted least recently used first, and idle sessions
// expire after ttl.
type MemoryStore struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, *sessionState]
	seq      int
	closed   bool
}

// NewMemoryStore creates a MemoryStore. A maxSessions of 0 means unbounded
// and a ttl of 0 disables expiry.
//
// A positive ttl starts an expiry goroutine inside the LRU that lives until
// the process exits; Close cannot stop it. Create one store per process.
func NewMemoryStore(maxSessions int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: expirable.NewLRU[string, *sessionState](maxSessions, nil, ttl),
	}
}

func (m *MemoryStore) state(sessionID string) *sessionState {
	st, ok := m.sessions.Get(sessionID)
	if !ok {
		st = &sessionState{}
	}
	return st
}

func (m *MemoryStore) AppendInteraction(ctx context.Context, in model.Interaction, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if in.ID == "" {
		m.seq++
		in.ID = fmt.Sprintf("mem-%d", m.seq)
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}
	in.Entities = append([]model.Entity(nil), in.Entities...)

	st := m.state(in.SessionID)
	st.interactions = append(st.interactions, in)
	if limit > 0 && len(st.interactions) > limit {
		st.interactions = append([]model.Interaction(nil), st.interactions[len(st.interactions)-limit:]...)
	}
	st.lastActive = in.Timestamp
	m.sessions.Add(in.SessionID, st)
	return nil
}

func (m *MemoryStore) Interactions(ctx context.Context, sessionID string) ([]model.Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions.Get(sessionID)
	if !ok {
		return []model.Interaction{}, nil
	}
	return copyInteractions(st.interactions), nil
}

func (m *MemoryStore) GetPattern(ctx context.Context, sessionID string) (*model.UserPattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions.Get(sessionID)
	if !ok || st.pattern == nil {
		return nil, fmt.Errorf("pattern %s: %w", sessionID, ErrNotFound)
	}
	return st.pattern.Clone(), nil
}

func (m *MemoryStore) PutPattern(ctx context.Context, p *model.UserPattern) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	st := m.state(p.SessionID)
	st.pattern = p.Clone()
	if p.UpdatedAt.After(st.lastActive) {
		st.lastActive = p.UpdatedAt
	}
	m.sessions.Add(p.SessionID, st)
	return nil
}

func (m *MemoryStore) Sessions(ctx context.Context) ([]SessionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []SessionSummary{}
	for _, id := range m.sessions.Keys() {
		st, ok := m.sessions.Peek(id)
		if !ok {
			continue
		}
		out = append(out, SessionSummary{
			SessionID:    id,
			Interactions: len(st.interactions),
			HasPattern:   st.pattern != nil,
			LastActive:   st.lastActive,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastActive.After(out[j].LastActive)
	})
	return out, nil
}

func (m *MemoryStore) Search(ctx context.Context, p SearchParams) ([]model.Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	var all []model.Interaction
	for _, id := range m.sessions.Keys() {
		st, ok := m.sessions.Peek(id)
		if !ok {
			continue
		}
		for _, in := range st.interactions {
			if p.matches(in) {
				all = append(all, in)
			}
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return copyInteractions(all), nil
}

func (m *MemoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sessions.Remove(sessionID) {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return nil
}

func (m *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := &Stats{}
	type acc struct {
		count int
		sum   float64
	}
	byIntent := map[string]*acc{}
	for _, id := range m.sessions.Keys() {
		s, ok := m.sessions.Peek(id)
		if !ok {
			continue
		}
		st.Sessions++
		if s.pattern != nil {
			st.Patterns++
		}
		for _, in := range s.interactions {
			st.Interactions++
			a, ok := byIntent[in.Intent]
			if !ok {
				a = &acc{}
				byIntent[in.Intent] = a
			}
			a.count++
			a.sum += in.Satisfaction
		}
	}

	for intent, a := range byIntent {
		st.Intents = append(st.Intents, IntentStats{
			Intent:          intent,
			Count:           a.count,
			AvgSatisfaction: a.sum / float64(a.count),
		})
	}
	sort.Slice(st.Intents, func(i, j int) bool {
		if st.Intents[i].Count != st.Intents[j].Count {
			return st.Intents[i].Count > st.Intents[j].Count
		}
		return st.Intents[i].Intent < st.Intents[j].Intent
	})
	return st, nil
}

// Close drops all sessions and rejects further writes. It does not stop the
// LRU's expiry goroutine.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.sessions.Purge()
	return nil
}

func copyInteractions(in []model.Interaction) []model.Interaction {
	out := make([]model.Interaction, len(in))
	for i, x := range in {
		x.Entities = append([]model.Entity(nil), x.Entities...)
		out[i] = x
	}
	return out
}
