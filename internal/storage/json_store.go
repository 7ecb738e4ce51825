package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/models"
)

// Store is the single JSON document persisted by the JSONStore.
type Store struct {
	Version    int                              `json:"version"`
	Settings   models.Settings                  `json:"settings"`
	Counters   map[string]models.Counter        `json:"counters"`
	Progress   map[string]models.ProgressEntry  `json:"progress"`
	History    map[string][]models.HistoryEntry `json:"history"`
	Milestones map[string][]models.Milestone    `json:"milestones"`
	Journal    map[string]models.JournalEntry   `json:"journal"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Settings: models.Settings{
			Timezone:             "Local",
			CompletionCooldownMs: constants.DefaultCompletionCooldownMs,
		},
		Counters:   make(map[string]models.Counter),
		Progress:   make(map[string]models.ProgressEntry),
		History:    make(map[string][]models.HistoryEntry),
		Milestones: make(map[string][]models.Milestone),
		Journal:    make(map[string]models.JournalEntry),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'japa init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Counters == nil {
		s.store.Counters = make(map[string]models.Counter)
	}
	if s.store.Progress == nil {
		s.store.Progress = make(map[string]models.ProgressEntry)
	}
	if s.store.History == nil {
		s.store.History = make(map[string][]models.HistoryEntry)
	}
	if s.store.Milestones == nil {
		s.store.Milestones = make(map[string][]models.Milestone)
	}
	if s.store.Journal == nil {
		s.store.Journal = make(map[string]models.JournalEntry)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddCounter(counter models.Counter) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Counters[counter.ID] = counter
	return s.save()
}

func (s *JSONStore) GetCounter(id string) (models.Counter, error) {
	if s.store == nil {
		return models.Counter{}, fmt.Errorf("storage not loaded")
	}
	counter, ok := s.store.Counters[id]
	if !ok {
		return models.Counter{}, fmt.Errorf("counter not found: %s", id)
	}
	return counter, nil
}

func (s *JSONStore) GetAllCounters() ([]models.Counter, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	counters := make([]models.Counter, 0, len(s.store.Counters))
	for _, counter := range s.store.Counters {
		counters = append(counters, counter)
	}
	sort.Slice(counters, func(i, j int) bool {
		return counters[i].CreatedAt.Before(counters[j].CreatedAt)
	})
	return counters, nil
}

func (s *JSONStore) UpdateCounter(counter models.Counter) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Counters[counter.ID]; !ok {
		return fmt.Errorf("counter not found: %s", counter.ID)
	}
	s.store.Counters[counter.ID] = counter
	return s.save()
}

// DeleteCounter removes the counter, its progress entry, and its milestones.
// History entries are deliberately retained for potential future reference.
func (s *JSONStore) DeleteCounter(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Counters[id]; !ok {
		return fmt.Errorf("counter not found: %s", id)
	}
	delete(s.store.Counters, id)
	delete(s.store.Progress, id)
	delete(s.store.Milestones, id)
	return s.save()
}

func (s *JSONStore) GetProgress(counterID string) (models.ProgressEntry, error) {
	if s.store == nil {
		return models.ProgressEntry{}, fmt.Errorf("storage not loaded")
	}
	progress, ok := s.store.Progress[counterID]
	if !ok {
		return models.ProgressEntry{}, fmt.Errorf("no progress entry for counter: %s", counterID)
	}
	return progress, nil
}

func (s *JSONStore) SaveProgress(progress models.ProgressEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Progress[progress.CounterID] = progress
	return s.save()
}

func (s *JSONStore) DeleteProgress(counterID string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.store.Progress, counterID)
	return s.save()
}

func (s *JSONStore) GetHistory(counterID string) ([]models.HistoryEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	entries := s.store.History[counterID]
	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *JSONStore) SaveHistory(counterID string, entries []models.HistoryEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	stored := make([]models.HistoryEntry, len(entries))
	copy(stored, entries)
	s.store.History[counterID] = stored
	return s.save()
}

func (s *JSONStore) GetMilestones(counterID string) ([]models.Milestone, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	milestones := s.store.Milestones[counterID]
	out := make([]models.Milestone, len(milestones))
	copy(out, milestones)
	return out, nil
}

func (s *JSONStore) SaveMilestones(counterID string, milestones []models.Milestone) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	stored := make([]models.Milestone, len(milestones))
	copy(stored, milestones)
	s.store.Milestones[counterID] = stored
	return s.save()
}

func (s *JSONStore) AddJournalEntry(entry models.JournalEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Journal[entry.ID] = entry
	return s.save()
}

func (s *JSONStore) GetJournalEntries(counterID string) ([]models.JournalEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	entries := make([]models.JournalEntry, 0, len(s.store.Journal))
	for _, entry := range s.store.Journal {
		if counterID != "" && entry.CounterID != counterID {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day > entries[j].Day
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
