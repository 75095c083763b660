package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mglynn/daytrack/internal/constants"
	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/storage"
)

func (s *Store) PutNotificationLog(entry models.NotificationLog) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	// One entry per (scope, date, type); re-notifying refreshes sent_at and
	// the remaining count in place.
	_, err := s.db.Exec(`
		INSERT INTO notification_log (id, tracker_id, type, sent_at, date, tasks_remaining)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(tracker_id, date, type) DO UPDATE SET
			sent_at = excluded.sent_at,
			tasks_remaining = excluded.tasks_remaining`,
		entry.ID, entry.TrackerID, string(entry.Type), entry.SentAt, entry.Date, entry.TasksRemaining)
	if err != nil {
		return fmt.Errorf("failed to put notification log entry: %w", err)
	}

	return nil
}

func (s *Store) GetNotificationLog(scope, date string, typ constants.NotificationType) (models.NotificationLog, error) {
	var n models.NotificationLog
	var typeStr string
	err := s.db.QueryRow(`
		SELECT id, tracker_id, type, sent_at, date, tasks_remaining
		FROM notification_log WHERE tracker_id = ? AND date = ? AND type = ?`,
		scope, date, string(typ)).
		Scan(&n.ID, &n.TrackerID, &typeStr, &n.SentAt, &n.Date, &n.TasksRemaining)

	if errors.Is(err, sql.ErrNoRows) {
		return models.NotificationLog{}, fmt.Errorf("notification log for %s/%s/%s: %w", scope, date, typ, storage.ErrNotFound)
	}
	if err != nil {
		return models.NotificationLog{}, fmt.Errorf("failed to get notification log entry: %w", err)
	}

	n.Type = constants.NotificationType(typeStr)
	return n, nil
}

// PurgeNotificationLog wipes the entire dedupe ledger. The scheduler calls
// this on weekend days so stale "already notified" entries cannot leak into
// later weeks.
func (s *Store) PurgeNotificationLog() error {
	if _, err := s.db.Exec(`DELETE FROM notification_log`); err != nil {
		return fmt.Errorf("failed to purge notification log: %w", err)
	}
	return nil
}
