package models

import "time"

// Milestone is a streak-length achievement. Achieved is monotonic: once set
// it never reverts, even if the streak later breaks.
type Milestone struct {
	ThresholdDays int        `json:"threshold_days"`
	Name          string     `json:"name"`
	Achieved      bool       `json:"achieved"`
	AchievedAt    *time.Time `json:"achieved_at,omitempty"`
}
