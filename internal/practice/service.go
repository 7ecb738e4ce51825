// Package practice is the single entry point for every mutation and derived
// read on counting state. Each operation runs the day-rollover gate before
// touching the cycle engine, which is what guarantees a completed cycle is
// never attributed to the wrong day.
package practice

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pbrahmapurd/japa/internal/clock"
	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/engine"
	"github.com/pbrahmapurd/japa/internal/logger"
	"github.com/pbrahmapurd/japa/internal/models"
	"github.com/pbrahmapurd/japa/internal/storage"
	"github.com/pbrahmapurd/japa/internal/validation"
)

// ErrCounterNotFound is returned when an operation names an unknown counter.
// Callers treat it as a no-op failure, never as a crash.
var ErrCounterNotFound = errors.New("counter not found")

// TapOutcome describes the effect of a single tap.
type TapOutcome struct {
	Progress       models.ProgressEntry
	CycleCompleted bool
	// Celebrate is CycleCompleted with the completion cooldown applied:
	// completions landing within the cooldown window of the previous one
	// keep their data effect but are not announced again.
	Celebrate     bool
	Streak        int
	NewMilestones []models.Milestone
}

// Summary is the read model for today's progress on one counter.
type Summary struct {
	CounterID            string
	Name                 string
	Mantra               string
	CurrentCount         int
	TodayCompletedCycles int
	CycleLength          int
	DailyGoal            int
}

// Service coordinates the engine, the clock, and storage.
type Service struct {
	store          storage.Provider
	clock          clock.Clock
	cooldown       time.Duration
	lastCompletion time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCooldown overrides the completion celebration cooldown.
func WithCooldown(d time.Duration) Option {
	return func(s *Service) {
		s.cooldown = d
	}
}

// New creates a Service over the given store and clock.
func New(store storage.Provider, clk clock.Clock, opts ...Option) *Service {
	s := &Service{
		store:    store,
		clock:    clk,
		cooldown: constants.DefaultCompletionCooldownMs * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// loadCounter fetches and sanitizes a counter definition.
func (s *Service) loadCounter(counterID string) (models.Counter, error) {
	counter, err := s.store.GetCounter(counterID)
	if err != nil {
		return models.Counter{}, fmt.Errorf("%w: %s", ErrCounterNotFound, counterID)
	}

	sanitized, result := validation.SanitizeCounter(counter)
	if result.Dirty() {
		for _, issue := range result.Issues {
			logger.Warn("Repaired corrupt counter definition", "issue", issue.Description)
		}
	}
	return sanitized, nil
}

// loadProgress fetches the counter's progress entry, falling back to a fresh
// entry for today when it is missing or corrupt.
func (s *Service) loadProgress(counter models.Counter, today string) models.ProgressEntry {
	progress, err := s.store.GetProgress(counter.ID)
	if err != nil {
		return models.NewProgressEntry(counter.ID, today)
	}

	sanitized, result := validation.SanitizeProgress(progress, counter.CycleLength, today)
	if result.Dirty() {
		for _, issue := range result.Issues {
			logger.Warn("Repaired corrupt progress entry", "issue", issue.Description)
		}
	}
	return sanitized
}

// freshen runs the rollover gate for the counter and persists its effects.
// It must complete before any engine mutation or streak read.
func (s *Service) freshen(counter models.Counter, today string) (models.ProgressEntry, []models.HistoryEntry) {
	progress := s.loadProgress(counter, today)

	history, err := s.store.GetHistory(counter.ID)
	if err != nil {
		logger.Warn("Failed to load history, treating as empty", "counter", counter.ID, "error", err)
		history = nil
	}

	result := engine.EnsureFreshDay(progress, counter.DailyGoal, history, today)
	if result.Archived {
		if err := s.store.SaveHistory(counter.ID, result.History); err != nil {
			logger.Warn("Failed to persist archived day", "counter", counter.ID, "error", err)
		}
	}
	if result.Progress != progress {
		if err := s.store.SaveProgress(result.Progress); err != nil {
			logger.Warn("Failed to persist rolled-over progress", "counter", counter.ID, "error", err)
		}
	}

	return result.Progress, result.History
}

// Tap advances the counter by one and reports completion, streak, and any
// newly achieved milestones.
func (s *Service) Tap(counterID string) (TapOutcome, error) {
	counter, err := s.loadCounter(counterID)
	if err != nil {
		return TapOutcome{}, err
	}

	today := s.clock.Today()
	progress, history := s.freshen(counter, today)

	result := engine.ApplyIncrement(progress, counter.CycleLength)
	if err := s.store.SaveProgress(result.Progress); err != nil {
		// In-memory state stays authoritative; the next successful save
		// catches up.
		logger.Warn("Failed to persist progress", "counter", counterID, "error", err)
	}

	outcome := TapOutcome{
		Progress:       result.Progress,
		CycleCompleted: result.CycleCompleted,
	}

	if result.CycleCompleted {
		now := s.clock.Now()
		if s.lastCompletion.IsZero() || now.Sub(s.lastCompletion) >= s.cooldown {
			outcome.Celebrate = true
			s.lastCompletion = now
		}

		outcome.Streak = engine.ComputeStreak(history, result.Progress.TodayCompletedCycles, counter.DailyGoal, today)
		outcome.NewMilestones = s.updateMilestones(counter.ID, outcome.Streak, now)
	}

	return outcome, nil
}

// UndoTap steps the in-cycle count back by one, flooring at zero.
func (s *Service) UndoTap(counterID string) (models.ProgressEntry, error) {
	counter, err := s.loadCounter(counterID)
	if err != nil {
		return models.ProgressEntry{}, err
	}

	progress, _ := s.freshen(counter, s.clock.Today())

	next := engine.ApplyDecrement(progress)
	if next != progress {
		if err := s.store.SaveProgress(next); err != nil {
			logger.Warn("Failed to persist progress", "counter", counterID, "error", err)
		}
	}
	return next, nil
}

// ResetCycle zeroes the in-cycle count ("end session") without touching
// today's completed-cycle tally.
func (s *Service) ResetCycle(counterID string) (models.ProgressEntry, error) {
	counter, err := s.loadCounter(counterID)
	if err != nil {
		return models.ProgressEntry{}, err
	}

	progress, _ := s.freshen(counter, s.clock.Today())

	next := engine.ResetCurrentCycle(progress)
	if next != progress {
		if err := s.store.SaveProgress(next); err != nil {
			logger.Warn("Failed to persist progress", "counter", counterID, "error", err)
		}
	}
	return next, nil
}

// TodaySummary returns the rollover-gated view of today's progress.
func (s *Service) TodaySummary(counterID string) (Summary, error) {
	counter, err := s.loadCounter(counterID)
	if err != nil {
		return Summary{}, err
	}

	progress, _ := s.freshen(counter, s.clock.Today())

	return Summary{
		CounterID:            counter.ID,
		Name:                 counter.Name,
		Mantra:               counter.Mantra,
		CurrentCount:         progress.CurrentCount,
		TodayCompletedCycles: progress.TodayCompletedCycles,
		CycleLength:          counter.CycleLength,
		DailyGoal:            counter.DailyGoal,
	}, nil
}

// Streak returns the current consecutive-day streak for the counter.
func (s *Service) Streak(counterID string) (int, error) {
	counter, err := s.loadCounter(counterID)
	if err != nil {
		return 0, err
	}

	today := s.clock.Today()
	progress, history := s.freshen(counter, today)

	return engine.ComputeStreak(history, progress.TodayCompletedCycles, counter.DailyGoal, today), nil
}

// LongestStreak returns the longest goal-met run in the retained history.
func (s *Service) LongestStreak(counterID string) (int, error) {
	counter, err := s.loadCounter(counterID)
	if err != nil {
		return 0, err
	}

	today := s.clock.Today()
	progress, history := s.freshen(counter, today)

	return engine.ComputeLongestStreak(history, progress.TodayCompletedCycles, counter.DailyGoal, today), nil
}

// Milestones returns the counter's milestone table, re-evaluated against the
// current streak so reads never show a stale unachieved state.
func (s *Service) Milestones(counterID string) ([]models.Milestone, error) {
	counter, err := s.loadCounter(counterID)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	progress, history := s.freshen(counter, today)
	streak := engine.ComputeStreak(history, progress.TodayCompletedCycles, counter.DailyGoal, today)

	milestones := s.milestonesFor(counterID)
	result := engine.EvaluateMilestones(milestones, streak, s.clock.Now())
	if len(result.NewlyAchieved) > 0 {
		if err := s.store.SaveMilestones(counterID, result.Milestones); err != nil {
			logger.Warn("Failed to persist milestones", "counter", counterID, "error", err)
		}
	}
	return result.Milestones, nil
}

// History returns the counter's archived days, most recent first.
func (s *Service) History(counterID string) ([]models.HistoryEntry, error) {
	counter, err := s.loadCounter(counterID)
	if err != nil {
		return nil, err
	}

	// Gate the read so a stale day is sealed before it is reported.
	s.freshen(counter, s.clock.Today())

	return s.store.GetHistory(counterID)
}

func (s *Service) milestonesFor(counterID string) []models.Milestone {
	milestones, err := s.store.GetMilestones(counterID)
	if err != nil || len(milestones) == 0 {
		return engine.DefaultMilestones()
	}
	return milestones
}

func (s *Service) updateMilestones(counterID string, streak int, now time.Time) []models.Milestone {
	result := engine.EvaluateMilestones(s.milestonesFor(counterID), streak, now)
	if len(result.NewlyAchieved) > 0 {
		if err := s.store.SaveMilestones(counterID, result.Milestones); err != nil {
			logger.Warn("Failed to persist milestones", "counter", counterID, "error", err)
		}
	}
	return result.NewlyAchieved
}

// CreateCounter registers a new practice with defaults applied and a fresh
// progress entry starting today. The first counter becomes active.
func (s *Service) CreateCounter(name, color, mantra string, cycleLength, dailyGoal int) (models.Counter, error) {
	if cycleLength < 1 {
		cycleLength = constants.DefaultCycleLength
	}
	if dailyGoal < 1 {
		dailyGoal = constants.DefaultDailyGoal
	}

	now := s.clock.Now()
	counter := models.Counter{
		ID:          uuid.New().String(),
		Name:        name,
		Color:       color,
		Mantra:      mantra,
		CycleLength: cycleLength,
		DailyGoal:   dailyGoal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.AddCounter(counter); err != nil {
		return models.Counter{}, err
	}
	if err := s.store.SaveProgress(models.NewProgressEntry(counter.ID, s.clock.Today())); err != nil {
		logger.Warn("Failed to persist initial progress", "counter", counter.ID, "error", err)
	}
	if err := s.store.SaveMilestones(counter.ID, engine.DefaultMilestones()); err != nil {
		logger.Warn("Failed to persist initial milestones", "counter", counter.ID, "error", err)
	}

	settings, err := s.store.GetSettings()
	if err == nil && settings.ActiveCounterID == "" {
		settings.ActiveCounterID = counter.ID
		if err := s.store.SaveSettings(settings); err != nil {
			logger.Warn("Failed to persist active counter", "counter", counter.ID, "error", err)
		}
	}

	return counter, nil
}

// UpdateCounter edits a counter definition. Goal changes apply from now on:
// archived GoalAchieved flags keep their snapshot and are never recomputed.
func (s *Service) UpdateCounter(counter models.Counter) (models.Counter, error) {
	if _, err := s.loadCounter(counter.ID); err != nil {
		return models.Counter{}, err
	}

	sanitized, _ := validation.SanitizeCounter(counter)
	sanitized.UpdatedAt = s.clock.Now()

	if err := s.store.UpdateCounter(sanitized); err != nil {
		return models.Counter{}, err
	}
	return sanitized, nil
}

// DeleteCounter removes the counter and its live state. History survives.
func (s *Service) DeleteCounter(counterID string) error {
	if _, err := s.loadCounter(counterID); err != nil {
		return err
	}
	if err := s.store.DeleteCounter(counterID); err != nil {
		return err
	}

	settings, err := s.store.GetSettings()
	if err == nil && settings.ActiveCounterID == counterID {
		settings.ActiveCounterID = ""
		if remaining, err := s.store.GetAllCounters(); err == nil && len(remaining) > 0 {
			settings.ActiveCounterID = remaining[0].ID
		}
		if err := s.store.SaveSettings(settings); err != nil {
			logger.Warn("Failed to persist active counter change", "error", err)
		}
	}
	return nil
}

// Counters lists all counter definitions.
func (s *Service) Counters() ([]models.Counter, error) {
	return s.store.GetAllCounters()
}

// SetActiveCounter selects which counter tap commands target by default.
func (s *Service) SetActiveCounter(counterID string) error {
	if _, err := s.loadCounter(counterID); err != nil {
		return err
	}
	settings, err := s.store.GetSettings()
	if err != nil {
		return err
	}
	settings.ActiveCounterID = counterID
	return s.store.SaveSettings(settings)
}

// ActiveCounter resolves the currently selected counter.
func (s *Service) ActiveCounter() (models.Counter, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.Counter{}, err
	}
	if settings.ActiveCounterID == "" {
		return models.Counter{}, fmt.Errorf("%w: no active counter configured", ErrCounterNotFound)
	}
	return s.loadCounter(settings.ActiveCounterID)
}

// AddJournalEntry records a dated reflection, defaulting to today.
func (s *Service) AddJournalEntry(counterID, day, reflection string) (models.JournalEntry, error) {
	if counterID != "" {
		if _, err := s.loadCounter(counterID); err != nil {
			return models.JournalEntry{}, err
		}
	}
	if day == "" {
		day = s.clock.Today()
	}
	if !validation.ValidDate(day) {
		return models.JournalEntry{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}

	entry := models.JournalEntry{
		ID:         uuid.New().String(),
		CounterID:  counterID,
		Day:        day,
		Reflection: reflection,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.store.AddJournalEntry(entry); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// JournalEntries lists reflections, optionally filtered by counter.
func (s *Service) JournalEntries(counterID string) ([]models.JournalEntry, error) {
	return s.store.GetJournalEntries(counterID)
}
