package store

import (
	"context"
	"os"
)

// Stats holds store statistics.
type Stats struct {
	DBPath       string        `json:"db_path,omitempty"`
	DBSizeBytes  int64         `json:"db_size_bytes,omitempty"`
	Sessions     int           `json:"sessions"`
	Interactions int           `json:"interactions"`
	Patterns     int           `json:"patterns"`
	Intents      []IntentStats `json:"intents"`
}

// IntentStats holds per-intent counts.
type IntentStats struct {
	Intent          string  `json:"intent"`
	Count           int     `json:"count"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	// DB file size
	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&st.Interactions)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patterns`).Scan(&st.Patterns)
	s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT session_id FROM interactions UNION SELECT session_id FROM patterns
		)`).Scan(&st.Sessions)

	rows, err := s.db.QueryContext(ctx, `
		SELECT intent, COUNT(*) AS cnt, AVG(satisfaction)
		FROM interactions
		GROUP BY intent ORDER BY cnt DESC, intent ASC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var is IntentStats
		rows.Scan(&is.Intent, &is.Count, &is.AvgSatisfaction)
		st.Intents = append(st.Intents, is)
	}

	return st, nil
}
