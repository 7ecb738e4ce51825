package models

// ProgressEntry is the live per-counter counting state for the current day.
// LastCountDate is a calendar date (YYYY-MM-DD); when it is stale relative to
// "today" the entry must be rolled over before any further mutation.
type ProgressEntry struct {
	CounterID            string `json:"counter_id"`
	CurrentCount         int    `json:"current_count"`
	TodayCompletedCycles int    `json:"today_completed_cycles"`
	LastCountDate        string `json:"last_count_date"`
}

// NewProgressEntry returns a fresh entry for a counter starting today.
func NewProgressEntry(counterID, today string) ProgressEntry {
	return ProgressEntry{
		CounterID:     counterID,
		LastCountDate: today,
	}
}
