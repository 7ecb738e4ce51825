package validation

import (
	"testing"

	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/models"
)

func TestSanitizeCounter_RepairsBadCycleLengthAndGoal(t *testing.T) {
	counter := models.Counter{ID: "c1", CycleLength: 0, DailyGoal: -2}

	sanitized, result := SanitizeCounter(counter)

	if !result.Dirty() {
		t.Fatal("expected repairs")
	}
	if sanitized.CycleLength != constants.DefaultCycleLength {
		t.Errorf("CycleLength = %d, want default %d", sanitized.CycleLength, constants.DefaultCycleLength)
	}
	if sanitized.DailyGoal != constants.DefaultDailyGoal {
		t.Errorf("DailyGoal = %d, want default %d", sanitized.DailyGoal, constants.DefaultDailyGoal)
	}
}

func TestSanitizeCounter_LeavesValidCounterAlone(t *testing.T) {
	counter := models.Counter{ID: "c1", CycleLength: 27, DailyGoal: 4}

	sanitized, result := SanitizeCounter(counter)

	if result.Dirty() {
		t.Errorf("unexpected repairs: %+v", result.Issues)
	}
	if sanitized != counter {
		t.Errorf("valid counter changed: %+v", sanitized)
	}
}

func TestSanitizeProgress_RepairsCorruptFields(t *testing.T) {
	progress := models.ProgressEntry{
		CounterID:            "c1",
		CurrentCount:         -3,
		TodayCompletedCycles: -1,
		LastCountDate:        "not-a-date",
	}

	sanitized, result := SanitizeProgress(progress, 108, "2026-08-27")

	if !result.Dirty() {
		t.Fatal("expected repairs")
	}
	if sanitized.CurrentCount != 0 || sanitized.TodayCompletedCycles != 0 {
		t.Errorf("counts not reset: %+v", sanitized)
	}
	if sanitized.LastCountDate != "2026-08-27" {
		t.Errorf("LastCountDate = %q, want today", sanitized.LastCountDate)
	}
}

func TestSanitizeProgress_CountBeyondCycleLength(t *testing.T) {
	progress := models.ProgressEntry{
		CounterID:     "c1",
		CurrentCount:  108,
		LastCountDate: "2026-08-27",
	}

	sanitized, result := SanitizeProgress(progress, 108, "2026-08-27")

	if !result.Dirty() {
		t.Fatal("expected a repair for count >= cycle length")
	}
	if sanitized.CurrentCount != 0 {
		t.Errorf("CurrentCount = %d, want 0", sanitized.CurrentCount)
	}
}

func TestSanitizeProgress_ValidEntryUntouched(t *testing.T) {
	progress := models.ProgressEntry{
		CounterID:            "c1",
		CurrentCount:         54,
		TodayCompletedCycles: 2,
		LastCountDate:        "2026-08-27",
	}

	sanitized, result := SanitizeProgress(progress, 108, "2026-08-27")

	if result.Dirty() {
		t.Errorf("unexpected repairs: %+v", result.Issues)
	}
	if sanitized != progress {
		t.Errorf("valid progress changed: %+v", sanitized)
	}
}
