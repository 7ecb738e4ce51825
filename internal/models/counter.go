package models

import "time"

// Counter represents a user-defined repeating practice (e.g., a 108-bead mala)
type Counter struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Mantra      string    `json:"mantra,omitempty"`
	CycleLength int       `json:"cycle_length"`
	DailyGoal   int       `json:"daily_goal"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
