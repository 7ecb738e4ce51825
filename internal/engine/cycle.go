// Package engine holds the pure transition functions for mala counting:
// tap application, day rollover archival, streak derivation, and milestone
// evaluation. Nothing in this package touches storage or the real clock.
package engine

import "github.com/pbrahmapurd/japa/internal/models"

// TapResult is the outcome of applying a single increment.
type TapResult struct {
	Progress       models.ProgressEntry
	CycleCompleted bool
}

// ApplyIncrement advances the in-cycle count by one tap. When the count
// reaches cycleLength the cycle wraps: the count resets to zero and today's
// completed-cycle tally increases by exactly one. The caller must have rolled
// the entry over to today before calling (LastCountDate == today).
func ApplyIncrement(progress models.ProgressEntry, cycleLength int) TapResult {
	if cycleLength < 1 {
		cycleLength = 1
	}

	next := progress
	next.CurrentCount++

	if next.CurrentCount >= cycleLength {
		next.CurrentCount = 0
		next.TodayCompletedCycles++
		return TapResult{Progress: next, CycleCompleted: true}
	}

	return TapResult{Progress: next}
}

// ApplyDecrement undoes one tap. It floors at zero: undo cannot reach into an
// archived day and never un-completes a cycle that already wrapped.
func ApplyDecrement(progress models.ProgressEntry) models.ProgressEntry {
	if progress.CurrentCount <= 0 {
		return progress
	}
	next := progress
	next.CurrentCount--
	return next
}

// ResetCurrentCycle zeroes the in-cycle count without touching today's
// completed-cycle tally or the count date. User-invoked ("end session"),
// distinct from day rollover.
func ResetCurrentCycle(progress models.ProgressEntry) models.ProgressEntry {
	next := progress
	next.CurrentCount = 0
	return next
}
