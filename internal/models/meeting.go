package models

import "time"

// Meeting statuses.
const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCompleted = "completed"
	MeetingStatusCancelled = "cancelled"
)

// Meeting is one calendar entry.
type Meeting struct {
	MeetingID       string    `json:"meeting_id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Date            string    `json:"date"` // YYYY-MM-DD
	Time            string    `json:"time"` // HH:MM
	DurationMinutes int       `json:"duration_minutes"`
	Attendees       []string  `json:"attendees,omitempty"`
	Location        string    `json:"location,omitempty"`
	Description     string    `json:"description,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MeetingFilters narrows list queries; Status "all" is the wildcard.
type MeetingFilters struct {
	UserID    string
	StartDate string
	EndDate   string
	Status    string
}
