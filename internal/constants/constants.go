package constants

const (
	AppName            = "japa"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/japa/japa.db"
	Version            = "v0.3.0"

	// DateFormat is the standard calendar-date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultCycleLength is the traditional 108-bead mala
	DefaultCycleLength = 108

	// DefaultDailyGoal is the default number of completed cycles per day
	DefaultDailyGoal = 3

	// MaxHistoryEntries caps the per-counter history retention window
	MaxHistoryEntries = 30

	// DefaultCompletionCooldownMs suppresses duplicate cycle-completed
	// celebrations fired within this window of the previous one
	DefaultCompletionCooldownMs = 1000

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "japa-"
	BackupFileSuffix = ".db"
)
