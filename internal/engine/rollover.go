package engine

import (
	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/models"
)

// RolloverResult carries the refreshed progress entry and the possibly
// updated history ledger for one counter.
type RolloverResult struct {
	Progress models.ProgressEntry
	History  []models.HistoryEntry
	Archived bool
}

// EnsureFreshDay seals a stale day into history and resets the live tally for
// today. It is a no-op when the entry already belongs to today, and it is
// idempotent: archiving the same stale day twice produces a single history
// entry. History is kept most-recent-first and trimmed to the retention cap.
//
// The in-progress partial cycle deliberately survives the boundary: a
// half-finished cycle straddling midnight continues on the new day. Only the
// daily completion tally resets. Multi-day gaps archive just the last-known
// day; the unused days in between stay absent from history, which is what
// breaks the streak.
func EnsureFreshDay(progress models.ProgressEntry, dailyGoal int, history []models.HistoryEntry, today string) RolloverResult {
	if progress.LastCountDate == today {
		return RolloverResult{Progress: progress, History: history}
	}

	archived := false
	if progress.TodayCompletedCycles > 0 && progress.LastCountDate != "" {
		entry := models.HistoryEntry{
			CounterID:       progress.CounterID,
			Date:            progress.LastCountDate,
			CompletedCycles: progress.TodayCompletedCycles,
			GoalAchieved:    progress.TodayCompletedCycles >= dailyGoal,
		}
		history = upsertHistory(history, entry)
		history = trimHistory(history, constants.MaxHistoryEntries)
		archived = true
	}

	next := progress
	next.TodayCompletedCycles = 0
	next.LastCountDate = today

	return RolloverResult{Progress: next, History: history, Archived: archived}
}

// upsertHistory inserts the entry at the head, replacing any existing entry
// for the same counter and date so retries never duplicate.
func upsertHistory(history []models.HistoryEntry, entry models.HistoryEntry) []models.HistoryEntry {
	deduped := make([]models.HistoryEntry, 0, len(history)+1)
	deduped = append(deduped, entry)
	for _, existing := range history {
		if existing.CounterID == entry.CounterID && existing.Date == entry.Date {
			continue
		}
		deduped = append(deduped, existing)
	}
	return deduped
}

// trimHistory drops the oldest entries beyond max. History is ordered
// most-recent-first, so trimming cuts the tail.
func trimHistory(history []models.HistoryEntry, max int) []models.HistoryEntry {
	if len(history) <= max {
		return history
	}
	return history[:max]
}
