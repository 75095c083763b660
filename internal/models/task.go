package models

import (
	"fmt"
	"time"
)

// Task is a recurring item within a tracker. CreatedAt doubles as the
// activation threshold: the task appears on any calendar day whose end of
// day (23:59:59.999 local) is at or after it, so tasks added later never
// retroactively show up on earlier days.
type Task struct {
	ID        string `json:"id"`
	TrackerID string `json:"tracker_id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"created_at"` // epoch milliseconds
}

func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id cannot be empty")
	}
	if t.TrackerID == "" {
		return fmt.Errorf("task tracker id cannot be empty")
	}
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	return nil
}

// CreatedTime returns the creation instant as a time.Time.
func (t Task) CreatedTime() time.Time {
	return time.UnixMilli(t.CreatedAt)
}
