package constants

import "time"

// NotificationType distinguishes the two kinds of scheduler notifications.
type NotificationType string

const (
	AppName           = "daytrack"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/daytrack/daytrack.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Scheduler timing
	PollInterval     = time.Hour
	PurgeInterval    = 6 * time.Hour
	ReminderCooldown = 15 * time.Minute

	// AllTrackersScope is the notification-log scope used for aggregate
	// (cross-tracker) dedupe entries.
	AllTrackersScope = "all-trackers"

	NotificationReminder   NotificationType = "reminder"
	NotificationCompletion NotificationType = "completion"

	// Rating bounds: 0 to 5 in half-star steps.
	MinRating  = 0.0
	MaxRating  = 5.0
	RatingStep = 0.5

	// EditWindowDays is how many days back a completion may still be edited.
	EditWindowDays = 1

	// Notify constants (tray helper)
	NotifierLockfileName   = "daytrack-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.mglynn.daytrack"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daytrack-"
	BackupFileSuffix = ".db"
)
