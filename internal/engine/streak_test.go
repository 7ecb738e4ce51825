package engine

import (
	"testing"
	"time"

	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/models"
)

const streakToday = "2026-08-27"

func daysAgo(n int) string {
	base, _ := time.Parse(constants.DateFormat, streakToday)
	return base.AddDate(0, 0, -n).Format(constants.DateFormat)
}

func achievedEntry(date string) models.HistoryEntry {
	return models.HistoryEntry{CounterID: "c1", Date: date, CompletedCycles: 3, GoalAchieved: true}
}

func missedEntry(date string) models.HistoryEntry {
	return models.HistoryEntry{CounterID: "c1", Date: date, CompletedCycles: 1, GoalAchieved: false}
}

func TestComputeStreak_EmptyHistory(t *testing.T) {
	if got := ComputeStreak(nil, 0, 3, streakToday); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

func TestComputeStreak_TodayLiveCountsWithoutArchival(t *testing.T) {
	if got := ComputeStreak(nil, 3, 3, streakToday); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestComputeStreak_TodayIncompleteStartsAtYesterday(t *testing.T) {
	history := []models.HistoryEntry{
		achievedEntry(daysAgo(1)),
		achievedEntry(daysAgo(2)),
		achievedEntry(daysAgo(3)),
		achievedEntry(daysAgo(4)),
		achievedEntry(daysAgo(5)),
	}

	if got := ComputeStreak(history, 0, 3, streakToday); got != 5 {
		t.Errorf("streak = %d, want 5 (today incomplete must not zero the streak)", got)
	}
}

func TestComputeStreak_StopsAtFirstGap(t *testing.T) {
	history := []models.HistoryEntry{
		achievedEntry(daysAgo(1)),
		missedEntry(daysAgo(2)),
		achievedEntry(daysAgo(3)),
	}

	if got := ComputeStreak(history, 0, 3, streakToday); got != 1 {
		t.Errorf("streak = %d, want 1 (must stop at the day-2 gap)", got)
	}
}

func TestComputeStreak_MissingDayIsAGap(t *testing.T) {
	history := []models.HistoryEntry{
		achievedEntry(daysAgo(1)),
		// daysAgo(2) absent entirely: app unused that day.
		achievedEntry(daysAgo(3)),
	}

	if got := ComputeStreak(history, 3, 3, streakToday); got != 2 {
		t.Errorf("streak = %d, want 2 (today + yesterday)", got)
	}
}

func TestComputeStreak_TodayExtendsArchivedRun(t *testing.T) {
	history := []models.HistoryEntry{
		achievedEntry(daysAgo(1)),
		achievedEntry(daysAgo(2)),
	}

	if got := ComputeStreak(history, 3, 3, streakToday); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestComputeLongestStreak_FindsPastRun(t *testing.T) {
	// A broken 3-day run in the past, a live 2-day run now.
	history := []models.HistoryEntry{
		achievedEntry(daysAgo(1)),
		achievedEntry(daysAgo(5)),
		achievedEntry(daysAgo(6)),
		achievedEntry(daysAgo(7)),
	}

	if got := ComputeLongestStreak(history, 3, 3, streakToday); got != 3 {
		t.Errorf("longest = %d, want 3", got)
	}
}

func TestComputeLongestStreak_NeverBelowCurrent(t *testing.T) {
	history := []models.HistoryEntry{
		achievedEntry(daysAgo(1)),
		achievedEntry(daysAgo(2)),
	}

	current := ComputeStreak(history, 3, 3, streakToday)
	longest := ComputeLongestStreak(history, 3, 3, streakToday)
	if longest < current {
		t.Errorf("longest = %d < current = %d", longest, current)
	}
}
