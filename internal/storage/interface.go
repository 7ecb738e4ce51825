package storage

import "github.com/pbrahmapurd/japa/internal/models"

// Provider is the persistence contract consumed by the practice service.
// Implementations persist JSON-shaped records; the service treats a failed
// save as recoverable and keeps its in-memory state authoritative.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Counters
	AddCounter(models.Counter) error
	GetCounter(id string) (models.Counter, error)
	GetAllCounters() ([]models.Counter, error)
	UpdateCounter(models.Counter) error
	DeleteCounter(id string) error

	// Progress
	GetProgress(counterID string) (models.ProgressEntry, error)
	SaveProgress(models.ProgressEntry) error
	DeleteProgress(counterID string) error

	// History, most-recent-first per counter
	GetHistory(counterID string) ([]models.HistoryEntry, error)
	SaveHistory(counterID string, entries []models.HistoryEntry) error

	// Milestones, per counter
	GetMilestones(counterID string) ([]models.Milestone, error)
	SaveMilestones(counterID string, milestones []models.Milestone) error

	// Journal
	AddJournalEntry(models.JournalEntry) error
	GetJournalEntries(counterID string) ([]models.JournalEntry, error)

	// Utils
	GetConfigPath() string
}
