package notes

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"assistant-agents/internal/models"
)

// Store owns the notes table. Full-text search lives in the service,
// which mirrors notes into the search index.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, n *models.Note) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (note_id, user_id, content, is_completed, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.NoteID, n.UserID, n.Content, n.IsCompleted, nullable(n.DueDate), n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, userID string) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT note_id, user_id, content, is_completed, due_date, created_at
		FROM notes
		WHERE user_id = $1
		ORDER BY is_completed ASC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

// MatchContent is the Postgres fallback when the search index is down.
func (s *Store) MatchContent(ctx context.Context, userID, term string) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT note_id, user_id, content, is_completed, due_date, created_at
		FROM notes
		WHERE user_id = $1 AND content ILIKE $2
		ORDER BY created_at DESC`,
		userID, "%"+term+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("match notes: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (s *Store) Update(ctx context.Context, userID, noteID string, updates map[string]interface{}) (int64, error) {
	var assignments []string
	var params []interface{}

	for _, field := range []string{"content", "is_completed", "due_date"} {
		value, ok := updates[field]
		if !ok {
			continue
		}
		params = append(params, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", field, len(params)))
	}
	if len(assignments) == 0 {
		return 0, fmt.Errorf("no updatable fields in payload")
	}

	params = append(params, userID, noteID)
	query := fmt.Sprintf(
		"UPDATE notes SET %s WHERE user_id = $%d AND note_id = $%d",
		strings.Join(assignments, ", "), len(params)-1, len(params),
	)

	result, err := s.db.ExecContext(ctx, query, params...)
	if err != nil {
		return 0, fmt.Errorf("update note: %w", err)
	}
	return result.RowsAffected()
}

// Get returns the note after an update so the mirror index stays current.
func (s *Store) Get(ctx context.Context, userID, noteID string) (*models.Note, error) {
	var n models.Note
	var due sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT note_id, user_id, content, is_completed, due_date, created_at
		FROM notes
		WHERE user_id = $1 AND note_id = $2`,
		userID, noteID,
	).Scan(&n.NoteID, &n.UserID, &n.Content, &n.IsCompleted, &due, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	n.DueDate = due.String
	return &n, nil
}

func (s *Store) Delete(ctx context.Context, userID, noteID string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM notes WHERE user_id = $1 AND note_id = $2",
		userID, noteID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete note: %w", err)
	}
	return result.RowsAffected()
}

func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	var notes []models.Note
	for rows.Next() {
		var n models.Note
		var due sql.NullString
		if err := rows.Scan(&n.NoteID, &n.UserID, &n.Content, &n.IsCompleted, &due, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		n.DueDate = due.String
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
