package models

import (
	"fmt"
	"math"
	"time"

	"github.com/mglynn/daytrack/internal/constants"
)

// TaskCompletion records whether a task was done (and how it was rated) on a
// specific calendar day. TrackerID is denormalized from the task for fast
// per-tracker queries. At most one completion exists per (TaskID, Date);
// writes for an existing pair overwrite in place, reusing the same ID.
type TaskCompletion struct {
	ID        string  `json:"id"`
	TaskID    string  `json:"task_id"`
	TrackerID string  `json:"tracker_id"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Completed bool    `json:"completed"`
	Rating    float64 `json:"rating"` // 0-5 in 0.5 steps; meaningful only when completed
}

// ValidRating reports whether r is within bounds and on a half-step boundary.
func ValidRating(r float64) bool {
	if r < constants.MinRating || r > constants.MaxRating {
		return false
	}
	steps := r / constants.RatingStep
	return math.Abs(steps-math.Round(steps)) < 1e-9
}

func (c *TaskCompletion) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("completion id cannot be empty")
	}
	if c.TaskID == "" {
		return fmt.Errorf("completion task id cannot be empty")
	}
	if c.TrackerID == "" {
		return fmt.Errorf("completion tracker id cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if !ValidRating(c.Rating) {
		return fmt.Errorf("rating %v is not between 0 and 5 in 0.5 steps", c.Rating)
	}
	return nil
}
