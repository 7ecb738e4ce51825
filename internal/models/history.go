package models

// HistoryEntry records one finished day for one counter. GoalAchieved is
// snapshotted at archival time against the goal in effect then; it is never
// recomputed when the goal later changes.
type HistoryEntry struct {
	CounterID       string `json:"counter_id"`
	Date            string `json:"date"` // YYYY-MM-DD, a day that has ended
	CompletedCycles int    `json:"completed_cycles"`
	GoalAchieved    bool   `json:"goal_achieved"`
}
