package models

import (
	"fmt"
	"time"

	"github.com/mglynn/daytrack/internal/constants"
)

// NotificationLog is the dedupe ledger for scheduler alerts. One entry exists
// per (scope, date, type) within a cooldown window; the scheduler overwrites
// the entry when it re-notifies. TrackerID holds the aggregate sentinel
// constants.AllTrackersScope for cross-tracker checks.
type NotificationLog struct {
	ID             string                     `json:"id"`
	TrackerID      string                     `json:"tracker_id"`
	Type           constants.NotificationType `json:"type"`
	SentAt         int64                      `json:"sent_at"` // epoch milliseconds
	Date           string                     `json:"date"`    // YYYY-MM-DD
	TasksRemaining int                        `json:"tasks_remaining"`
}

func (n *NotificationLog) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("notification log id cannot be empty")
	}
	if n.TrackerID == "" {
		return fmt.Errorf("notification log scope cannot be empty")
	}
	if n.Type != constants.NotificationReminder && n.Type != constants.NotificationCompletion {
		return fmt.Errorf("unknown notification type %q", n.Type)
	}
	if _, err := time.Parse(constants.DateFormat, n.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if n.TasksRemaining < 0 {
		return fmt.Errorf("tasks remaining cannot be negative")
	}
	return nil
}

// SentTime returns the send instant as a time.Time.
func (n NotificationLog) SentTime() time.Time {
	return time.UnixMilli(n.SentAt)
}
