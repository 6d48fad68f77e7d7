package model

import "errors"

// ErrMissingFields is returned when a draft lacks required fields. The check
// runs before any request is issued.
var ErrMissingFields = errors.New("title, date and time are required")

// EventDraft is the creation-form payload for a new event.
type EventDraft struct {
	Title      string    `json:"title"`
	Type       EventType `json:"type"`
	Date       string    `json:"event_date"`
	Time       string    `json:"event_time"`
	Status     Status    `json:"status"`
	Location   string    `json:"location,omitempty"`
	ClientName string    `json:"client_name,omitempty"`
	Category   string    `json:"category,omitempty"`
}

// Normalize fills the form defaults for unset fields.
func (d *EventDraft) Normalize() {
	if d.Type == "" {
		d.Type = TypeMeeting
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Category == "" {
		d.Category = "cliente"
	}
}

// Validate checks the required fields.
func (d EventDraft) Validate() error {
	if d.Title == "" || d.Date == "" || d.Time == "" {
		return ErrMissingFields
	}
	return nil
}
