package models

import "time"

// JournalEntry is a dated practice reflection, optionally tied to a counter.
type JournalEntry struct {
	ID         string    `json:"id"`
	CounterID  string    `json:"counter_id,omitempty"`
	Day        string    `json:"day"` // YYYY-MM-DD format
	Reflection string    `json:"reflection"`
	CreatedAt  time.Time `json:"created_at"`
}
