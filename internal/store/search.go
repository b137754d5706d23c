package store

import (
	"context"
	"strings"

	"github.com/rcliao/coach-engine/internal/model"
)

// SearchParams holds parameters for searching interactions.
type SearchParams struct {
	SessionID string
	Query     string
	Intent    string
	Limit     int
}

// Search finds interactions whose user message or response contains the
// query substring, newest first.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.Interaction, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := "%" + p.Query + "%"
	where := []string{"(user_message LIKE ? OR ai_response LIKE ?)"}
	args := []interface{}{query, query}

	if p.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, p.SessionID)
	}
	if p.Intent != "" {
		where = append(where, "intent = ?")
		args = append(args, p.Intent)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+interactionColumns+` FROM interactions WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY seq DESC LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInteractions(rows)
}

// matches applies SearchParams to one interaction for stores without SQL.
func (p SearchParams) matches(in model.Interaction) bool {
	if p.SessionID != "" && in.SessionID != p.SessionID {
		return false
	}
	if p.Intent != "" && in.Intent != p.Intent {
		return false
	}
	q := strings.ToLower(p.Query)
	return strings.Contains(strings.ToLower(in.UserMessage), q) ||
		strings.Contains(strings.ToLower(in.AIResponse), q)
}
