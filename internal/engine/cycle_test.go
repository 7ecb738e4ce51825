package engine

import (
	"testing"

	"github.com/pbrahmapurd/japa/internal/models"
)

func TestApplyIncrement_WrapsExactlyOnCycleLength(t *testing.T) {
	cycleLengths := []int{1, 3, 10, 108}

	for _, cycleLength := range cycleLengths {
		progress := models.ProgressEntry{CounterID: "c1", LastCountDate: "2026-08-27"}

		for tap := 1; tap <= cycleLength; tap++ {
			result := ApplyIncrement(progress, cycleLength)
			progress = result.Progress

			wantCompleted := tap == cycleLength
			if result.CycleCompleted != wantCompleted {
				t.Fatalf("cycleLength=%d tap=%d: CycleCompleted = %v, want %v",
					cycleLength, tap, result.CycleCompleted, wantCompleted)
			}
		}

		if progress.CurrentCount != 0 {
			t.Errorf("cycleLength=%d: CurrentCount after full cycle = %d, want 0", cycleLength, progress.CurrentCount)
		}
		if progress.TodayCompletedCycles != 1 {
			t.Errorf("cycleLength=%d: TodayCompletedCycles = %d, want 1", cycleLength, progress.TodayCompletedCycles)
		}
	}
}

func TestApplyIncrement_MidCycleDoesNotComplete(t *testing.T) {
	progress := models.ProgressEntry{CounterID: "c1", CurrentCount: 5, LastCountDate: "2026-08-27"}

	result := ApplyIncrement(progress, 108)

	if result.CycleCompleted {
		t.Error("expected no completion mid-cycle")
	}
	if result.Progress.CurrentCount != 6 {
		t.Errorf("CurrentCount = %d, want 6", result.Progress.CurrentCount)
	}
	if result.Progress.TodayCompletedCycles != 0 {
		t.Errorf("TodayCompletedCycles = %d, want 0", result.Progress.TodayCompletedCycles)
	}
}

func TestApplyDecrement_FloorsAtZero(t *testing.T) {
	progress := models.ProgressEntry{CounterID: "c1", TodayCompletedCycles: 2, LastCountDate: "2026-08-27"}

	next := ApplyDecrement(progress)

	if next != progress {
		t.Errorf("decrement at zero changed state: %+v", next)
	}
	if next.TodayCompletedCycles != 2 {
		t.Errorf("TodayCompletedCycles = %d, want 2 (undo must never un-complete a cycle)", next.TodayCompletedCycles)
	}
}

func TestApplyDecrement_StepsBackOne(t *testing.T) {
	progress := models.ProgressEntry{CounterID: "c1", CurrentCount: 7, LastCountDate: "2026-08-27"}

	next := ApplyDecrement(progress)

	if next.CurrentCount != 6 {
		t.Errorf("CurrentCount = %d, want 6", next.CurrentCount)
	}
}

func TestResetCurrentCycle_KeepsDailyTallyAndDate(t *testing.T) {
	progress := models.ProgressEntry{
		CounterID:            "c1",
		CurrentCount:         42,
		TodayCompletedCycles: 2,
		LastCountDate:        "2026-08-27",
	}

	next := ResetCurrentCycle(progress)

	if next.CurrentCount != 0 {
		t.Errorf("CurrentCount = %d, want 0", next.CurrentCount)
	}
	if next.TodayCompletedCycles != 2 {
		t.Errorf("TodayCompletedCycles = %d, want 2", next.TodayCompletedCycles)
	}
	if next.LastCountDate != "2026-08-27" {
		t.Errorf("LastCountDate = %q, want unchanged", next.LastCountDate)
	}
}

func TestApplyIncrement_FullDayScenario(t *testing.T) {
	// 108-bead mala, goal of 3 cycles: 324 taps should land exactly on the goal.
	progress := models.ProgressEntry{CounterID: "c1", LastCountDate: "2026-08-27"}
	completions := 0

	for tap := 0; tap < 324; tap++ {
		result := ApplyIncrement(progress, 108)
		progress = result.Progress
		if result.CycleCompleted {
			completions++
		}
	}

	if completions != 3 {
		t.Errorf("completions = %d, want 3", completions)
	}
	if progress.TodayCompletedCycles != 3 {
		t.Errorf("TodayCompletedCycles = %d, want 3", progress.TodayCompletedCycles)
	}
	if progress.CurrentCount != 0 {
		t.Errorf("CurrentCount = %d, want 0", progress.CurrentCount)
	}
}
