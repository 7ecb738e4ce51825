package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	timezone TEXT NOT NULL DEFAULT 'Local',
	active_counter_id TEXT NOT NULL DEFAULT '',
	completion_cooldown_ms INTEGER NOT NULL DEFAULT 1000
);
CREATE TABLE IF NOT EXISTS counters (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	mantra TEXT NOT NULL DEFAULT '',
	cycle_length INTEGER NOT NULL,
	daily_goal INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS progress (
	counter_id TEXT PRIMARY KEY,
	current_count INTEGER NOT NULL DEFAULT 0,
	today_completed_cycles INTEGER NOT NULL DEFAULT 0,
	last_count_date TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS history (
	counter_id TEXT NOT NULL,
	date TEXT NOT NULL,
	completed_cycles INTEGER NOT NULL,
	goal_achieved INTEGER NOT NULL,
	PRIMARY KEY (counter_id, date)
);
CREATE TABLE IF NOT EXISTS milestones (
	counter_id TEXT NOT NULL,
	threshold_days INTEGER NOT NULL,
	name TEXT NOT NULL,
	achieved INTEGER NOT NULL DEFAULT 0,
	achieved_at TEXT,
	PRIMARY KEY (counter_id, threshold_days)
);
CREATE TABLE IF NOT EXISTS journal (
	id TEXT PRIMARY KEY,
	counter_id TEXT NOT NULL DEFAULT '',
	day TEXT NOT NULL,
	reflection TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default settings if not present
	settings, err := s.GetSettings()
	if err != nil || settings.Timezone == "" {
		defaults := models.Settings{
			Timezone:             "Local",
			CompletionCooldownMs: constants.DefaultCompletionCooldownMs,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'japa init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

// GetDB exposes the underlying connection for health checks.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ready guards calls made before Init or Load has opened the database.
func (s *SQLiteStore) ready() error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized, run 'japa init' first")
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	if err := s.ready(); err != nil {
		return models.Settings{}, err
	}

	row := s.db.QueryRow(`
		SELECT timezone, active_counter_id, completion_cooldown_ms
		FROM settings WHERE id = 1`)

	var settings models.Settings
	if err := row.Scan(&settings.Timezone, &settings.ActiveCounterID, &settings.CompletionCooldownMs); err != nil {
		if err == sql.ErrNoRows {
			return models.Settings{}, nil
		}
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, timezone, active_counter_id, completion_cooldown_ms)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			timezone = excluded.timezone,
			active_counter_id = excluded.active_counter_id,
			completion_cooldown_ms = excluded.completion_cooldown_ms`,
		settings.Timezone, settings.ActiveCounterID, settings.CompletionCooldownMs)
	return err
}

func (s *SQLiteStore) AddCounter(counter models.Counter) error {
	_, err := s.db.Exec(`
		INSERT INTO counters (id, name, color, mantra, cycle_length, daily_goal, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		counter.ID, counter.Name, counter.Color, counter.Mantra,
		counter.CycleLength, counter.DailyGoal,
		counter.CreatedAt.Format(time.RFC3339), counter.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) scanCounter(row interface{ Scan(...interface{}) error }) (models.Counter, error) {
	var c models.Counter
	var createdAt, updatedAt string

	if err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Mantra, &c.CycleLength, &c.DailyGoal, &createdAt, &updatedAt); err != nil {
		return models.Counter{}, err
	}

	var err error
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Counter{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Counter{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) GetCounter(id string) (models.Counter, error) {
	row := s.db.QueryRow(`
		SELECT id, name, color, mantra, cycle_length, daily_goal, created_at, updated_at
		FROM counters WHERE id = ?`, id)

	counter, err := s.scanCounter(row)
	if err != nil {
		return models.Counter{}, fmt.Errorf("counter not found: %s", id)
	}
	return counter, nil
}

func (s *SQLiteStore) GetAllCounters() ([]models.Counter, error) {
	rows, err := s.db.Query(`
		SELECT id, name, color, mantra, cycle_length, daily_goal, created_at, updated_at
		FROM counters ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []models.Counter
	for rows.Next() {
		counter, err := s.scanCounter(rows)
		if err != nil {
			return nil, err
		}
		counters = append(counters, counter)
	}
	return counters, rows.Err()
}

func (s *SQLiteStore) UpdateCounter(counter models.Counter) error {
	result, err := s.db.Exec(`
		UPDATE counters SET name = ?, color = ?, mantra = ?, cycle_length = ?, daily_goal = ?, updated_at = ?
		WHERE id = ?`,
		counter.Name, counter.Color, counter.Mantra, counter.CycleLength, counter.DailyGoal,
		counter.UpdatedAt.Format(time.RFC3339), counter.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("counter not found: %s", counter.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteCounter(id string) error {
	result, err := s.db.Exec(`DELETE FROM counters WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("counter not found: %s", id)
	}

	// Progress and milestones cascade; history is retained.
	if _, err := s.db.Exec(`DELETE FROM progress WHERE counter_id = ?`, id); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM milestones WHERE counter_id = ?`, id); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) GetProgress(counterID string) (models.ProgressEntry, error) {
	row := s.db.QueryRow(`
		SELECT counter_id, current_count, today_completed_cycles, last_count_date
		FROM progress WHERE counter_id = ?`, counterID)

	var p models.ProgressEntry
	if err := row.Scan(&p.CounterID, &p.CurrentCount, &p.TodayCompletedCycles, &p.LastCountDate); err != nil {
		if err == sql.ErrNoRows {
			return models.ProgressEntry{}, fmt.Errorf("no progress entry for counter: %s", counterID)
		}
		return models.ProgressEntry{}, err
	}
	return p, nil
}

func (s *SQLiteStore) SaveProgress(progress models.ProgressEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO progress (counter_id, current_count, today_completed_cycles, last_count_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(counter_id) DO UPDATE SET
			current_count = excluded.current_count,
			today_completed_cycles = excluded.today_completed_cycles,
			last_count_date = excluded.last_count_date`,
		progress.CounterID, progress.CurrentCount, progress.TodayCompletedCycles, progress.LastCountDate)
	return err
}

func (s *SQLiteStore) DeleteProgress(counterID string) error {
	_, err := s.db.Exec(`DELETE FROM progress WHERE counter_id = ?`, counterID)
	return err
}

func (s *SQLiteStore) GetHistory(counterID string) ([]models.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT counter_id, date, completed_cycles, goal_achieved
		FROM history WHERE counter_id = ? ORDER BY date DESC`, counterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var achieved int
		if err := rows.Scan(&e.CounterID, &e.Date, &e.CompletedCycles, &achieved); err != nil {
			return nil, err
		}
		e.GoalAchieved = achieved != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveHistory replaces the counter's ledger wholesale. The engine already
// upserted and trimmed it, so a delete-and-insert inside one transaction
// keeps the stored shape identical to the in-memory one.
func (s *SQLiteStore) SaveHistory(counterID string, entries []models.HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history WHERE counter_id = ?`, counterID); err != nil {
		return err
	}
	for _, e := range entries {
		achieved := 0
		if e.GoalAchieved {
			achieved = 1
		}
		if _, err := tx.Exec(`
			INSERT INTO history (counter_id, date, completed_cycles, goal_achieved)
			VALUES (?, ?, ?, ?)`,
			counterID, e.Date, e.CompletedCycles, achieved); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetMilestones(counterID string) ([]models.Milestone, error) {
	rows, err := s.db.Query(`
		SELECT threshold_days, name, achieved, achieved_at
		FROM milestones WHERE counter_id = ? ORDER BY threshold_days`, counterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var m models.Milestone
		var achieved int
		var achievedAt sql.NullString
		if err := rows.Scan(&m.ThresholdDays, &m.Name, &achieved, &achievedAt); err != nil {
			return nil, err
		}
		m.Achieved = achieved != 0
		if achievedAt.Valid {
			t, err := time.Parse(time.RFC3339, achievedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse achieved_at: %w", err)
			}
			m.AchievedAt = &t
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (s *SQLiteStore) SaveMilestones(counterID string, milestones []models.Milestone) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM milestones WHERE counter_id = ?`, counterID); err != nil {
		return err
	}
	for _, m := range milestones {
		achieved := 0
		if m.Achieved {
			achieved = 1
		}
		var achievedAt sql.NullString
		if m.AchievedAt != nil {
			achievedAt = sql.NullString{String: m.AchievedAt.Format(time.RFC3339), Valid: true}
		}
		if _, err := tx.Exec(`
			INSERT INTO milestones (counter_id, threshold_days, name, achieved, achieved_at)
			VALUES (?, ?, ?, ?, ?)`,
			counterID, m.ThresholdDays, m.Name, achieved, achievedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) AddJournalEntry(entry models.JournalEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO journal (id, counter_id, day, reflection, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.CounterID, entry.Day, entry.Reflection,
		entry.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetJournalEntries(counterID string) ([]models.JournalEntry, error) {
	query := `SELECT id, counter_id, day, reflection, created_at FROM journal`
	args := []interface{}{}
	if counterID != "" {
		query += ` WHERE counter_id = ?`
		args = append(args, counterID)
	}
	query += ` ORDER BY day DESC, created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.CounterID, &e.Day, &e.Reflection, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
