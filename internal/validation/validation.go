package validation

import (
	"fmt"
	"time"

	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/models"
)

// IssueType represents the type of shape problem found in persisted state
type IssueType string

const (
	IssueNegativeCount    IssueType = "negative_count"
	IssueCountOutOfRange  IssueType = "count_out_of_range"
	IssueInvalidDate      IssueType = "invalid_date"
	IssueInvalidCycleSize IssueType = "invalid_cycle_size"
	IssueInvalidGoal      IssueType = "invalid_goal"
)

// Issue describes one repair applied while sanitizing loaded state.
type Issue struct {
	Type        IssueType
	Description string
}

// Result collects the repairs made during a sanitize pass.
type Result struct {
	Issues []Issue
}

// Dirty returns true if any repair was applied.
func (r *Result) Dirty() bool {
	return len(r.Issues) > 0
}

func (r *Result) add(issueType IssueType, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Type:        issueType,
		Description: fmt.Sprintf(format, args...),
	})
}

// SanitizeCounter repairs out-of-domain counter fields, substituting the
// application defaults. Corrupt persisted data must degrade to a usable
// counter, never propagate.
func SanitizeCounter(counter models.Counter) (models.Counter, Result) {
	var result Result

	if counter.CycleLength < 1 {
		result.add(IssueInvalidCycleSize, "counter %s: cycle length %d, reset to %d",
			counter.ID, counter.CycleLength, constants.DefaultCycleLength)
		counter.CycleLength = constants.DefaultCycleLength
	}
	if counter.DailyGoal < 1 {
		result.add(IssueInvalidGoal, "counter %s: daily goal %d, reset to %d",
			counter.ID, counter.DailyGoal, constants.DefaultDailyGoal)
		counter.DailyGoal = constants.DefaultDailyGoal
	}

	return counter, result
}

// SanitizeProgress repairs a loaded progress entry against its counter's
// cycle length. Irreparable fields fall back to a fresh entry for today
// rather than crash: worst case is a visibly reset counter.
func SanitizeProgress(progress models.ProgressEntry, cycleLength int, today string) (models.ProgressEntry, Result) {
	var result Result

	if progress.CurrentCount < 0 {
		result.add(IssueNegativeCount, "counter %s: current count %d, reset to 0",
			progress.CounterID, progress.CurrentCount)
		progress.CurrentCount = 0
	}
	if cycleLength > 0 && progress.CurrentCount >= cycleLength {
		result.add(IssueCountOutOfRange, "counter %s: current count %d exceeds cycle length %d, reset to 0",
			progress.CounterID, progress.CurrentCount, cycleLength)
		progress.CurrentCount = 0
	}
	if progress.TodayCompletedCycles < 0 {
		result.add(IssueNegativeCount, "counter %s: completed cycles %d, reset to 0",
			progress.CounterID, progress.TodayCompletedCycles)
		progress.TodayCompletedCycles = 0
	}
	if !ValidDate(progress.LastCountDate) {
		result.add(IssueInvalidDate, "counter %s: count date %q unparseable, reset to today",
			progress.CounterID, progress.LastCountDate)
		progress.LastCountDate = today
		progress.TodayCompletedCycles = 0
	}

	return progress, result
}

// ValidDate reports whether the string is a well-formed YYYY-MM-DD date.
func ValidDate(date string) bool {
	_, err := time.Parse(constants.DateFormat, date)
	return err == nil
}
