package meeting

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"assistant-agents/internal/models"
)

// Store owns the meetings table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const meetingColumns = `meeting_id, user_id, title, date, time, duration_minutes,
	       attendees, location, description, status, created_at, updated_at`

func (s *Store) Insert(ctx context.Context, m *models.Meeting) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meetings (`+meetingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.MeetingID, m.UserID, m.Title, m.Date, m.Time, m.DurationMinutes,
		pq.Array(m.Attendees), m.Location, m.Description, m.Status,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, f models.MeetingFilters) ([]models.Meeting, error) {
	var conditions []string
	var params []interface{}

	add := func(clause string, value interface{}) {
		params = append(params, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(params)))
	}

	add("user_id = $%d", f.UserID)
	if f.StartDate != "" {
		add("date >= $%d", f.StartDate)
	}
	if f.EndDate != "" {
		add("date <= $%d", f.EndDate)
	}
	if f.Status != "" && f.Status != "all" {
		add("status = $%d", f.Status)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings
		WHERE `+strings.Join(conditions, " AND ")+`
		ORDER BY date ASC, time ASC`,
		params...,
	)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()
	return scanMeetings(rows)
}

// MatchTitle finds scheduled meetings whose title or description contains
// the search term.
func (s *Store) MatchTitle(ctx context.Context, userID, term string) ([]models.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings
		WHERE user_id = $1 AND (title ILIKE $2 OR description ILIKE $2)
		ORDER BY date ASC, time ASC`,
		userID, "%"+term+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("search meetings: %w", err)
	}
	defer rows.Close()
	return scanMeetings(rows)
}

// Overlapping returns scheduled meetings on the same date whose time
// window intersects [startTime, endTime). Times are HH:MM, so string
// comparison orders them correctly.
func (s *Store) Overlapping(ctx context.Context, userID, date, startTime, endTime string) ([]models.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings
		WHERE user_id = $1 AND date = $2 AND status = $3
		  AND time < $5
		  AND (time + (duration_minutes || ' minutes')::interval)::time > $4::time
		ORDER BY time ASC`,
		userID, date, models.MeetingStatusScheduled, startTime, endTime,
	)
	if err != nil {
		return nil, fmt.Errorf("query overlapping meetings: %w", err)
	}
	defer rows.Close()
	return scanMeetings(rows)
}

var updatableColumns = map[string]string{
	"title":            "title",
	"date":             "date",
	"time":             "time",
	"duration_minutes": "duration_minutes",
	"location":         "location",
	"description":      "description",
	"status":           "status",
}

func (s *Store) Update(ctx context.Context, userID, meetingID string, updates map[string]interface{}) (int64, error) {
	var assignments []string
	var params []interface{}

	for field, value := range updates {
		column, ok := updatableColumns[field]
		if !ok {
			continue
		}
		params = append(params, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(params)))
	}
	if len(assignments) == 0 {
		return 0, fmt.Errorf("no updatable fields in payload")
	}
	assignments = append(assignments, "updated_at = NOW()")

	params = append(params, userID, meetingID)
	query := fmt.Sprintf(
		"UPDATE meetings SET %s WHERE user_id = $%d AND meeting_id = $%d",
		strings.Join(assignments, ", "), len(params)-1, len(params),
	)

	result, err := s.db.ExecContext(ctx, query, params...)
	if err != nil {
		return 0, fmt.Errorf("update meeting: %w", err)
	}
	return result.RowsAffected()
}

// Cancel marks a meeting cancelled instead of removing the row.
func (s *Store) Cancel(ctx context.Context, userID, meetingID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE meetings SET status = $3, updated_at = NOW()
		WHERE user_id = $1 AND meeting_id = $2 AND status <> $3`,
		userID, meetingID, models.MeetingStatusCancelled,
	)
	if err != nil {
		return 0, fmt.Errorf("cancel meeting: %w", err)
	}
	return result.RowsAffected()
}

func scanMeetings(rows *sql.Rows) ([]models.Meeting, error) {
	var meetings []models.Meeting
	for rows.Next() {
		var m models.Meeting
		var attendees pq.StringArray
		if err := rows.Scan(
			&m.MeetingID, &m.UserID, &m.Title, &m.Date, &m.Time, &m.DurationMinutes,
			&attendees, &m.Location, &m.Description, &m.Status,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		m.Attendees = attendees
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}
