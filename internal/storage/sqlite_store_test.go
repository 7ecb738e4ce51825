package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pbrahmapurd/japa/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "japa.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_GetSettingsBeforeLoad(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "japa.db"))

	// No Init or Load yet: the store must report the condition, not panic.
	if _, err := store.GetSettings(); err == nil {
		t.Error("expected error from GetSettings on an unopened store")
	}
}

func TestSQLiteStore_InitSeedsDefaultSettings(t *testing.T) {
	store := newTestSQLiteStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("Timezone = %q, want %q", settings.Timezone, "Local")
	}
	if settings.CompletionCooldownMs != 1000 {
		t.Errorf("CompletionCooldownMs = %d, want 1000", settings.CompletionCooldownMs)
	}
}

func TestSQLiteStore_CounterRoundtrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	counter := models.Counter{
		ID:          "c1",
		Name:        "Gayatri",
		Color:       "#D4AF37",
		Mantra:      "Om bhur bhuvah svah",
		CycleLength: 108,
		DailyGoal:   3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.AddCounter(counter); err != nil {
		t.Fatalf("AddCounter failed: %v", err)
	}

	got, err := store.GetCounter("c1")
	if err != nil {
		t.Fatalf("GetCounter failed: %v", err)
	}
	if got.Name != counter.Name || got.CycleLength != 108 || got.Mantra != counter.Mantra {
		t.Errorf("got %+v, want %+v", got, counter)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}

	counter.DailyGoal = 5
	counter.UpdatedAt = now.Add(time.Hour)
	if err := store.UpdateCounter(counter); err != nil {
		t.Fatalf("UpdateCounter failed: %v", err)
	}
	got, _ = store.GetCounter("c1")
	if got.DailyGoal != 5 {
		t.Errorf("DailyGoal after update = %d, want 5", got.DailyGoal)
	}

	if err := store.UpdateCounter(models.Counter{ID: "missing", CreatedAt: now, UpdatedAt: now}); err == nil {
		t.Error("expected error updating unknown counter")
	}
}

func TestSQLiteStore_ProgressUpsert(t *testing.T) {
	store := newTestSQLiteStore(t)

	if _, err := store.GetProgress("c1"); err == nil {
		t.Error("expected error for missing progress")
	}

	progress := models.ProgressEntry{
		CounterID:            "c1",
		CurrentCount:         42,
		TodayCompletedCycles: 1,
		LastCountDate:        "2026-08-27",
	}
	if err := store.SaveProgress(progress); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	progress.CurrentCount = 43
	if err := store.SaveProgress(progress); err != nil {
		t.Fatalf("SaveProgress upsert failed: %v", err)
	}

	got, err := store.GetProgress("c1")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got.CurrentCount != 43 || got.LastCountDate != "2026-08-27" {
		t.Errorf("got %+v", got)
	}
}

func TestSQLiteStore_HistoryReplaceAndOrder(t *testing.T) {
	store := newTestSQLiteStore(t)

	entries := []models.HistoryEntry{
		{CounterID: "c1", Date: "2026-08-26", CompletedCycles: 3, GoalAchieved: true},
		{CounterID: "c1", Date: "2026-08-25", CompletedCycles: 1, GoalAchieved: false},
	}
	if err := store.SaveHistory("c1", entries); err != nil {
		t.Fatalf("SaveHistory failed: %v", err)
	}

	got, err := store.GetHistory("c1")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Date != "2026-08-26" || !got[0].GoalAchieved {
		t.Errorf("entries not ordered most recent first: %+v", got)
	}

	// Saving again replaces rather than appends.
	if err := store.SaveHistory("c1", entries[:1]); err != nil {
		t.Fatalf("SaveHistory replace failed: %v", err)
	}
	got, _ = store.GetHistory("c1")
	if len(got) != 1 {
		t.Errorf("got %d entries after replace, want 1", len(got))
	}
}

func TestSQLiteStore_MilestonesRoundtrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	achievedAt := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	milestones := []models.Milestone{
		{ThresholdDays: 1, Name: "First Step", Achieved: true, AchievedAt: &achievedAt},
		{ThresholdDays: 3, Name: "Taking Root"},
	}
	if err := store.SaveMilestones("c1", milestones); err != nil {
		t.Fatalf("SaveMilestones failed: %v", err)
	}

	got, err := store.GetMilestones("c1")
	if err != nil {
		t.Fatalf("GetMilestones failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d milestones, want 2", len(got))
	}
	if !got[0].Achieved || got[0].AchievedAt == nil || !got[0].AchievedAt.Equal(achievedAt) {
		t.Errorf("achieved milestone lost its timestamp: %+v", got[0])
	}
	if got[1].Achieved || got[1].AchievedAt != nil {
		t.Errorf("unachieved milestone gained state: %+v", got[1])
	}
}

func TestSQLiteStore_DeleteCounterRetainsHistory(t *testing.T) {
	store := newTestSQLiteStore(t)

	now := time.Now().UTC()
	counter := models.Counter{ID: "c1", Name: "Japa", CycleLength: 108, DailyGoal: 3, CreatedAt: now, UpdatedAt: now}
	if err := store.AddCounter(counter); err != nil {
		t.Fatalf("AddCounter failed: %v", err)
	}
	if err := store.SaveProgress(models.ProgressEntry{CounterID: "c1", LastCountDate: "2026-08-27"}); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}
	if err := store.SaveHistory("c1", []models.HistoryEntry{{CounterID: "c1", Date: "2026-08-26", CompletedCycles: 3, GoalAchieved: true}}); err != nil {
		t.Fatalf("SaveHistory failed: %v", err)
	}

	if err := store.DeleteCounter("c1"); err != nil {
		t.Fatalf("DeleteCounter failed: %v", err)
	}

	if _, err := store.GetProgress("c1"); err == nil {
		t.Error("progress should be deleted with the counter")
	}
	history, err := store.GetHistory("c1")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history should survive counter deletion, got %d entries", len(history))
	}
}

func TestSQLiteStore_JournalFilter(t *testing.T) {
	store := newTestSQLiteStore(t)

	now := time.Now().UTC()
	entries := []models.JournalEntry{
		{ID: "j1", CounterID: "c1", Day: "2026-08-26", Reflection: "calm", CreatedAt: now},
		{ID: "j2", CounterID: "", Day: "2026-08-27", Reflection: "restless", CreatedAt: now},
	}
	for _, e := range entries {
		if err := store.AddJournalEntry(e); err != nil {
			t.Fatalf("AddJournalEntry failed: %v", err)
		}
	}

	all, err := store.GetJournalEntries("")
	if err != nil {
		t.Fatalf("GetJournalEntries failed: %v", err)
	}
	if len(all) != 2 || all[0].Day != "2026-08-27" {
		t.Errorf("all entries wrong order or count: %+v", all)
	}

	filtered, err := store.GetJournalEntries("c1")
	if err != nil {
		t.Fatalf("GetJournalEntries filtered failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != "j1" {
		t.Errorf("filter returned %+v", filtered)
	}
}
