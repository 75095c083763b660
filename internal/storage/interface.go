package storage

import (
	"errors"

	"github.com/mglynn/daytrack/internal/constants"
	"github.com/mglynn/daytrack/internal/models"
)

// ErrNotFound is returned by point lookups when no record matches. Absence
// is a valid outcome for callers (e.g. "no completion yet for this task
// today") and is never surfaced as a panic or fatal error.
var ErrNotFound = errors.New("record not found")

// Provider is the storage contract for the four collections (trackers,
// tasks, completions, notification log) plus settings. Listing methods scan
// secondary indexes and make no ordering promises; callers must not rely on
// insertion order.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Trackers. PutTracker has upsert semantics so tracker edits are
	// idempotent under retry.
	PutTracker(models.Tracker) error
	GetTracker(id string) (models.Tracker, error)
	GetAllTrackers() ([]models.Tracker, error)
	// DeleteTrackerCascade removes the tracker, its tasks, and its
	// completions in one atomic transaction.
	DeleteTrackerCascade(id string) error

	// Tasks. AddTask fails if the id already exists.
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetTasksByTracker(trackerID string) ([]models.Task, error)
	// DeleteTaskCascade removes the task and all completions referencing
	// it in one atomic transaction.
	DeleteTaskCascade(id string) error

	// Completions. PutCompletion has upsert semantics keyed by id; the
	// UNIQUE(task_id, date) index backs the one-record-per-day invariant.
	PutCompletion(models.TaskCompletion) error
	GetCompletion(taskID, date string) (models.TaskCompletion, error)
	GetCompletionsByTracker(trackerID string) ([]models.TaskCompletion, error)
	GetCompletionsByTrackerAndDate(trackerID, date string) ([]models.TaskCompletion, error)
	GetCompletionsByDate(date string) ([]models.TaskCompletion, error)

	// Notification log
	PutNotificationLog(models.NotificationLog) error
	GetNotificationLog(scope, date string, typ constants.NotificationType) (models.NotificationLog, error)
	// PurgeNotificationLog wipes the whole dedupe ledger.
	PurgeNotificationLog() error

	// Utils
	GetConfigPath() string
}
