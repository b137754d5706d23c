package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/coach-engine/internal/model"
)

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	entropy *rand.Rand
	idMu    sync.Mutex
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		path:    dbPath,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// NewID returns a new ULID string.
func (s *SQLiteStore) NewID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interactions (
		seq          INTEGER PRIMARY KEY AUTOINCREMENT,
		id           TEXT NOT NULL UNIQUE,
		session_id   TEXT NOT NULL,
		timestamp    TEXT NOT NULL,
		user_message TEXT NOT NULL,
		ai_response  TEXT NOT NULL,
		context_tag  TEXT NOT NULL DEFAULT 'general',
		mood         TEXT NOT NULL DEFAULT 'neutral',
		satisfaction REAL NOT NULL DEFAULT 0.5,
		intent       TEXT NOT NULL,
		entities     TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_session ON interactions(session_id, seq);
	CREATE INDEX IF NOT EXISTS idx_interactions_intent ON interactions(intent);

	CREATE TABLE IF NOT EXISTS patterns (
		session_id TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) AppendInteraction(ctx context.Context, in model.Interaction, limit int) error {
	if in.ID == "" {
		in.ID = s.NewID()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}

	var entitiesJSON *string
	if len(in.Entities) > 0 {
		b, err := json.Marshal(in.Entities)
		if err != nil {
			return fmt.Errorf("marshal entities: %w", err)
		}
		v := string(b)
		entitiesJSON = &v
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO interactions (id, session_id, timestamp, user_message, ai_response, context_tag, mood, satisfaction, intent, entities)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.SessionID, in.Timestamp.UTC().Format(timeFormat), in.UserMessage, in.AIResponse,
		in.ContextTag, in.Mood, in.Satisfaction, in.Intent, entitiesJSON)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}

	// Evict the oldest rows beyond the cap
	if limit > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM interactions WHERE session_id = ? AND seq NOT IN (
				SELECT seq FROM interactions WHERE session_id = ? ORDER BY seq DESC LIMIT ?
			)`, in.SessionID, in.SessionID, limit)
		if err != nil {
			return fmt.Errorf("evict interactions: %w", err)
		}
	}

	return tx.Commit()
}

const interactionColumns = `id, session_id, timestamp, user_message, ai_response, context_tag, mood, satisfaction, intent, entities`

func (s *SQLiteStore) Interactions(ctx context.Context, sessionID string) ([]model.Interaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+interactionColumns+` FROM interactions WHERE session_id = ? ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInteractions(rows)
}

func (s *SQLiteStore) GetPattern(ctx context.Context, sessionID string) (*model.UserPattern, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM patterns WHERE session_id = ?`, sessionID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pattern %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var p model.UserPattern
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decode pattern: %w", err)
	}
	if p.WorkoutTimes == nil {
		p.WorkoutTimes = map[string]int{}
	}
	return &p, nil
}

func (s *SQLiteStore) PutPattern(ctx context.Context, p *model.UserPattern) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pattern: %w", err)
	}
	now := time.Now().UTC().Format(timeFormat)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO patterns (session_id, data, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		p.SessionID, string(b), now, now)
	if err != nil {
		return fmt.Errorf("upsert pattern: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Sessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sid, COALESCE(cnt, 0), has_pattern, last_active FROM (
			SELECT i.session_id AS sid, COUNT(*) AS cnt,
			       EXISTS(SELECT 1 FROM patterns p WHERE p.session_id = i.session_id) AS has_pattern,
			       MAX(i.timestamp) AS last_active
			FROM interactions i GROUP BY i.session_id
			UNION ALL
			SELECT p.session_id, 0, 1, p.updated_at FROM patterns p
			WHERE NOT EXISTS(SELECT 1 FROM interactions i WHERE i.session_id = p.session_id)
		) ORDER BY last_active DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var ss SessionSummary
		var lastActive string
		if err := rows.Scan(&ss.SessionID, &ss.Interactions, &ss.HasPattern, &lastActive); err != nil {
			return nil, err
		}
		ss.LastActive, _ = time.Parse(time.RFC3339Nano, lastActive)
		out = append(out, ss)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM interactions WHERE session_id = ?`, sessionID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	res, err = tx.ExecContext(ctx, `DELETE FROM patterns WHERE session_id = ?`, sessionID)
	if err != nil {
		return err
	}
	m, _ := res.RowsAffected()
	if n+m == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInteractions(rows *sql.Rows) ([]model.Interaction, error) {
	out := []model.Interaction{}
	for rows.Next() {
		in, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func scanInteraction(row scanner) (model.Interaction, error) {
	var in model.Interaction
	var ts string
	var entities sql.NullString

	err := row.Scan(&in.ID, &in.SessionID, &ts, &in.UserMessage, &in.AIResponse,
		&in.ContextTag, &in.Mood, &in.Satisfaction, &in.Intent, &entities)
	if err != nil {
		return in, err
	}

	if in.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return in, fmt.Errorf("interaction %s: parse timestamp: %w", in.ID, err)
	}
	if entities.Valid {
		if err := json.Unmarshal([]byte(entities.String), &in.Entities); err != nil {
			return in, fmt.Errorf("interaction %s: unmarshal entities: %w", in.ID, err)
		}
	}
	return in, nil
}
