package models

import "time"

// Note is one note row.
type Note struct {
	NoteID      string    `json:"note_id"`
	UserID      string    `json:"user_id"`
	Content     string    `json:"content"`
	IsCompleted bool      `json:"iscompleted"`
	DueDate     string    `json:"due_date,omitempty"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
}
