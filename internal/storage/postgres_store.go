package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/keyring"
	"github.com/pbrahmapurd/japa/internal/models"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// PostgresStore persists the same records as the local stores in a shared
// PostgreSQL database, for users who sync practice across machines.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

// HasEmbeddedCredentials reports whether a URL-style connection string
// carries a password. Passwords belong in the OS keyring, the environment,
// or .pgpass, never on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

// resolveConnStr prefers a keyring-stored connection string (which may carry
// credentials) over the bare one given on the command line.
func (s *PostgresStore) resolveConnStr() string {
	stored, err := keyring.GetConnectionString()
	if err == nil && stored != "" {
		return stored
	}
	return s.connStr
}

const postgresSchema = `
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
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
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
	goal_achieved BOOLEAN NOT NULL,
	PRIMARY KEY (counter_id, date)
);
CREATE TABLE IF NOT EXISTS milestones (
	counter_id TEXT NOT NULL,
	threshold_days INTEGER NOT NULL,
	name TEXT NOT NULL,
	achieved BOOLEAN NOT NULL DEFAULT FALSE,
	achieved_at TIMESTAMPTZ,
	PRIMARY KEY (counter_id, threshold_days)
);
CREATE TABLE IF NOT EXISTS journal (
	id TEXT PRIMARY KEY,
	counter_id TEXT NOT NULL DEFAULT '',
	day TEXT NOT NULL,
	reflection TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`

func (s *PostgresStore) open() error {
	connStr := s.resolveConnStr()
	if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
		return fmt.Errorf("%w: %s", ErrInvalidConnectionString, s.connStr)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	return s.open()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ready guards calls made before Init or Load has opened a connection.
func (s *PostgresStore) ready() error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized, run 'japa init' first")
	}
	return nil
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
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

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, timezone, active_counter_id, completion_cooldown_ms)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			active_counter_id = EXCLUDED.active_counter_id,
			completion_cooldown_ms = EXCLUDED.completion_cooldown_ms`,
		settings.Timezone, settings.ActiveCounterID, settings.CompletionCooldownMs)
	return err
}

func (s *PostgresStore) AddCounter(counter models.Counter) error {
	_, err := s.db.Exec(`
		INSERT INTO counters (id, name, color, mantra, cycle_length, daily_goal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		counter.ID, counter.Name, counter.Color, counter.Mantra,
		counter.CycleLength, counter.DailyGoal, counter.CreatedAt, counter.UpdatedAt)
	return err
}

func (s *PostgresStore) GetCounter(id string) (models.Counter, error) {
	row := s.db.QueryRow(`
		SELECT id, name, color, mantra, cycle_length, daily_goal, created_at, updated_at
		FROM counters WHERE id = $1`, id)

	var c models.Counter
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Mantra, &c.CycleLength, &c.DailyGoal, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return models.Counter{}, fmt.Errorf("counter not found: %s", id)
	}
	return c, nil
}

func (s *PostgresStore) GetAllCounters() ([]models.Counter, error) {
	rows, err := s.db.Query(`
		SELECT id, name, color, mantra, cycle_length, daily_goal, created_at, updated_at
		FROM counters ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []models.Counter
	for rows.Next() {
		var c models.Counter
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Mantra, &c.CycleLength, &c.DailyGoal, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		counters = append(counters, c)
	}
	return counters, rows.Err()
}

func (s *PostgresStore) UpdateCounter(counter models.Counter) error {
	result, err := s.db.Exec(`
		UPDATE counters SET name = $1, color = $2, mantra = $3, cycle_length = $4, daily_goal = $5, updated_at = $6
		WHERE id = $7`,
		counter.Name, counter.Color, counter.Mantra, counter.CycleLength, counter.DailyGoal,
		counter.UpdatedAt, counter.ID)
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

func (s *PostgresStore) DeleteCounter(id string) error {
	result, err := s.db.Exec(`DELETE FROM counters WHERE id = $1`, id)
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
	if _, err := s.db.Exec(`DELETE FROM progress WHERE counter_id = $1`, id); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM milestones WHERE counter_id = $1`, id); err != nil {
		return err
	}
	return nil
}

func (s *PostgresStore) GetProgress(counterID string) (models.ProgressEntry, error) {
	row := s.db.QueryRow(`
		SELECT counter_id, current_count, today_completed_cycles, last_count_date
		FROM progress WHERE counter_id = $1`, counterID)

	var p models.ProgressEntry
	if err := row.Scan(&p.CounterID, &p.CurrentCount, &p.TodayCompletedCycles, &p.LastCountDate); err != nil {
		if err == sql.ErrNoRows {
			return models.ProgressEntry{}, fmt.Errorf("no progress entry for counter: %s", counterID)
		}
		return models.ProgressEntry{}, err
	}
	return p, nil
}

func (s *PostgresStore) SaveProgress(progress models.ProgressEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO progress (counter_id, current_count, today_completed_cycles, last_count_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (counter_id) DO UPDATE SET
			current_count = EXCLUDED.current_count,
			today_completed_cycles = EXCLUDED.today_completed_cycles,
			last_count_date = EXCLUDED.last_count_date`,
		progress.CounterID, progress.CurrentCount, progress.TodayCompletedCycles, progress.LastCountDate)
	return err
}

func (s *PostgresStore) DeleteProgress(counterID string) error {
	_, err := s.db.Exec(`DELETE FROM progress WHERE counter_id = $1`, counterID)
	return err
}

func (s *PostgresStore) GetHistory(counterID string) ([]models.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT counter_id, date, completed_cycles, goal_achieved
		FROM history WHERE counter_id = $1 ORDER BY date DESC`, counterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.CounterID, &e.Date, &e.CompletedCycles, &e.GoalAchieved); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) SaveHistory(counterID string, entries []models.HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history WHERE counter_id = $1`, counterID); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.Exec(`
			INSERT INTO history (counter_id, date, completed_cycles, goal_achieved)
			VALUES ($1, $2, $3, $4)`,
			counterID, e.Date, e.CompletedCycles, e.GoalAchieved); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) GetMilestones(counterID string) ([]models.Milestone, error) {
	rows, err := s.db.Query(`
		SELECT threshold_days, name, achieved, achieved_at
		FROM milestones WHERE counter_id = $1 ORDER BY threshold_days`, counterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var m models.Milestone
		var achievedAt sql.NullTime
		if err := rows.Scan(&m.ThresholdDays, &m.Name, &m.Achieved, &achievedAt); err != nil {
			return nil, err
		}
		if achievedAt.Valid {
			t := achievedAt.Time
			m.AchievedAt = &t
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (s *PostgresStore) SaveMilestones(counterID string, milestones []models.Milestone) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM milestones WHERE counter_id = $1`, counterID); err != nil {
		return err
	}
	for _, m := range milestones {
		var achievedAt sql.NullTime
		if m.AchievedAt != nil {
			achievedAt = sql.NullTime{Time: *m.AchievedAt, Valid: true}
		}
		if _, err := tx.Exec(`
			INSERT INTO milestones (counter_id, threshold_days, name, achieved, achieved_at)
			VALUES ($1, $2, $3, $4, $5)`,
			counterID, m.ThresholdDays, m.Name, m.Achieved, achievedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) AddJournalEntry(entry models.JournalEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO journal (id, counter_id, day, reflection, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.CounterID, entry.Day, entry.Reflection, entry.CreatedAt)
	return err
}

func (s *PostgresStore) GetJournalEntries(counterID string) ([]models.JournalEntry, error) {
	query := `SELECT id, counter_id, day, reflection, created_at FROM journal`
	args := []interface{}{}
	if counterID != "" {
		query += ` WHERE counter_id = $1`
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
		if err := rows.Scan(&e.ID, &e.CounterID, &e.Day, &e.Reflection, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
