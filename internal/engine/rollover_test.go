package engine

import (
	"fmt"
	"testing"

	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/models"
)

func TestEnsureFreshDay_NoOpWhenCurrent(t *testing.T) {
	progress := models.ProgressEntry{
		CounterID:            "c1",
		CurrentCount:         5,
		TodayCompletedCycles: 2,
		LastCountDate:        "2026-08-27",
	}

	result := EnsureFreshDay(progress, 3, nil, "2026-08-27")

	if result.Archived {
		t.Error("expected no archival for a current entry")
	}
	if result.Progress != progress {
		t.Errorf("progress changed on no-op rollover: %+v", result.Progress)
	}
}

func TestEnsureFreshDay_ArchivesStaleDay(t *testing.T) {
	progress := models.ProgressEntry{
		CounterID:            "c1",
		CurrentCount:         5,
		TodayCompletedCycles: 3,
		LastCountDate:        "2026-08-26",
	}

	result := EnsureFreshDay(progress, 3, nil, "2026-08-27")

	if !result.Archived {
		t.Fatal("expected archival")
	}
	if len(result.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(result.History))
	}

	entry := result.History[0]
	if entry.Date != "2026-08-26" || entry.CompletedCycles != 3 || !entry.GoalAchieved {
		t.Errorf("unexpected history entry: %+v", entry)
	}

	// Partial cycle survives the boundary; only the daily tally resets.
	if result.Progress.CurrentCount != 5 {
		t.Errorf("CurrentCount = %d, want 5", result.Progress.CurrentCount)
	}
	if result.Progress.TodayCompletedCycles != 0 {
		t.Errorf("TodayCompletedCycles = %d, want 0", result.Progress.TodayCompletedCycles)
	}
	if result.Progress.LastCountDate != "2026-08-27" {
		t.Errorf("LastCountDate = %q, want today", result.Progress.LastCountDate)
	}
}

func TestEnsureFreshDay_GoalNotMetSnapshotsFalse(t *testing.T) {
	progress := models.ProgressEntry{
		CounterID:            "c1",
		TodayCompletedCycles: 1,
		LastCountDate:        "2026-08-26",
	}

	result := EnsureFreshDay(progress, 3, nil, "2026-08-27")

	if len(result.History) != 1 || result.History[0].GoalAchieved {
		t.Errorf("expected a single non-achieved entry, got %+v", result.History)
	}
}

func TestEnsureFreshDay_Idempotent(t *testing.T) {
	progress := models.ProgressEntry{
		CounterID:            "c1",
		TodayCompletedCycles: 4,
		LastCountDate:        "2026-08-26",
	}

	first := EnsureFreshDay(progress, 3, nil, "2026-08-27")

	// A retry of the same archival (e.g. re-invocation before the reset
	// persisted) must replace, not duplicate.
	second := EnsureFreshDay(progress, 3, first.History, "2026-08-27")

	if len(second.History) != 1 {
		t.Fatalf("history length after retry = %d, want 1", len(second.History))
	}
	if second.History[0] != first.History[0] {
		t.Errorf("retry produced a different entry: %+v vs %+v", second.History[0], first.History[0])
	}
}

func TestEnsureFreshDay_NoEntryForEmptyDay(t *testing.T) {
	progress := models.ProgressEntry{CounterID: "c1", LastCountDate: "2026-08-20"}

	result := EnsureFreshDay(progress, 3, nil, "2026-08-27")

	if result.Archived || len(result.History) != 0 {
		t.Errorf("zero-progress day must not be archived, got %+v", result.History)
	}
	if result.Progress.LastCountDate != "2026-08-27" {
		t.Errorf("LastCountDate = %q, want today", result.Progress.LastCountDate)
	}
}

func TestEnsureFreshDay_MultiDayGapArchivesOnlyLastKnownDay(t *testing.T) {
	progress := models.ProgressEntry{
		CounterID:            "c1",
		TodayCompletedCycles: 3,
		LastCountDate:        "2026-08-20",
	}

	result := EnsureFreshDay(progress, 3, nil, "2026-08-27")

	if len(result.History) != 1 {
		t.Fatalf("history length = %d, want 1 (no back-filled zero days)", len(result.History))
	}
	if result.History[0].Date != "2026-08-20" {
		t.Errorf("archived date = %q, want 2026-08-20", result.History[0].Date)
	}
}

func TestEnsureFreshDay_TrimsToRetentionCap(t *testing.T) {
	history := make([]models.HistoryEntry, 0, constants.MaxHistoryEntries)
	for i := 0; i < constants.MaxHistoryEntries; i++ {
		history = append(history, models.HistoryEntry{
			CounterID:       "c1",
			Date:            fmt.Sprintf("2026-07-%02d", i+1),
			CompletedCycles: 3,
			GoalAchieved:    true,
		})
	}
	oldest := history[len(history)-1]

	progress := models.ProgressEntry{
		CounterID:            "c1",
		TodayCompletedCycles: 3,
		LastCountDate:        "2026-08-26",
	}

	result := EnsureFreshDay(progress, 3, history, "2026-08-27")

	if len(result.History) != constants.MaxHistoryEntries {
		t.Fatalf("history length = %d, want %d", len(result.History), constants.MaxHistoryEntries)
	}
	if result.History[0].Date != "2026-08-26" {
		t.Errorf("newest entry = %q, want the archived day", result.History[0].Date)
	}
	for _, entry := range result.History {
		if entry == oldest {
			t.Errorf("oldest entry %q should have been dropped", oldest.Date)
		}
	}
}
