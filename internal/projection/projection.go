// Package projection derives per-day views from tasks and completions. All
// functions are pure: given the same records and reference date they return
// the same answer, which is what lets the scheduler and the UI share them.
package projection

import (
	"iter"
	"time"

	"github.com/mglynn/daytrack/internal/constants"
	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/utils"
)

// DailyStats summarizes one calendar day of a tracker.
type DailyStats struct {
	Completed int
	Total     int
}

// EndOfDay returns 23:59:59.999 local time on the given calendar day. A task
// created at any instant on day D compares at or before EndOfDay(D), so it
// is active from D onward.
func EndOfDay(date string, loc *time.Location) (time.Time, error) {
	day, err := utils.ParseDateInLocation(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	// Built from wall-clock components rather than midnight+24h so DST
	// transitions (23- and 25-hour days) never shift the instant off the day.
	y, m, d := day.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, loc), nil
}

// ActiveTasksOn filters tasks to those whose creation instant is at or
// before the end of the given day.
func ActiveTasksOn(tasks []models.Task, date string, loc *time.Location) ([]models.Task, error) {
	eod, err := EndOfDay(date, loc)
	if err != nil {
		return nil, err
	}

	threshold := eod.UnixMilli()
	var active []models.Task
	for _, t := range tasks {
		if t.CreatedAt <= threshold {
			active = append(active, t)
		}
	}
	return active, nil
}

// CompletionFor returns the completion record for (taskID, date), if any.
// Absence means not completed, rating 0.
func CompletionFor(completions []models.TaskCompletion, date, taskID string) (models.TaskCompletion, bool) {
	for _, c := range completions {
		if c.TaskID == taskID && c.Date == date {
			return c, true
		}
	}
	return models.TaskCompletion{}, false
}

// StatsOn counts completed versus total active tasks on a day.
func StatsOn(tasks []models.Task, completions []models.TaskCompletion, date string, loc *time.Location) (DailyStats, error) {
	active, err := ActiveTasksOn(tasks, date, loc)
	if err != nil {
		return DailyStats{}, err
	}

	stats := DailyStats{Total: len(active)}
	for _, t := range active {
		if c, ok := CompletionFor(completions, date, t.ID); ok && c.Completed {
			stats.Completed++
		}
	}
	return stats, nil
}

// CompletionRate returns the completed share as a percentage, 0 when the
// day has no active tasks.
func (s DailyStats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// AverageRating is the mean rating over every completion record present on
// the date. Records with rating 0 count toward the denominator, and records
// not marked completed are included too: a task checked off but never rated
// deliberately dilutes the average.
func AverageRating(completions []models.TaskCompletion, date string) float64 {
	var sum float64
	count := 0
	for _, c := range completions {
		if c.Date == date {
			sum += c.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Remaining counts active tasks on the date without a true completion.
func Remaining(tasks []models.Task, completions []models.TaskCompletion, date string, loc *time.Location) (int, error) {
	stats, err := StatsOn(tasks, completions, date, loc)
	if err != nil {
		return 0, err
	}
	return stats.Total - stats.Completed, nil
}

// CalendarDays yields every calendar-day string from the day containing
// trackerCreatedAt through the day containing now, inclusive. The sequence
// is finite and restartable; iterating it twice walks the same days.
func CalendarDays(trackerCreatedAt, now time.Time) iter.Seq[string] {
	return func(yield func(string) bool) {
		day := utils.StartOfDay(trackerCreatedAt)
		end := utils.StartOfDay(now.In(trackerCreatedAt.Location()))
		for !day.After(end) {
			if !yield(utils.FormatDate(day)) {
				return
			}
			day = day.AddDate(0, 0, 1)
		}
	}
}

// CanEdit reports whether completions on the date may still be mutated:
// not in the future, not before the tracker existed, and at most
// EditWindowDays back from today. This is a policy check for callers, not a
// storage constraint; the store itself accepts any date.
func CanEdit(date string, trackerCreatedAt, now time.Time) bool {
	loc := now.Location()
	day, err := utils.ParseDateInLocation(date, loc)
	if err != nil {
		return false
	}

	today := utils.StartOfDay(now)
	creationDay := utils.StartOfDay(trackerCreatedAt.In(loc))

	if day.After(today) {
		return false
	}
	if day.Before(creationDay) {
		return false
	}

	// Count calendar days, not elapsed hours, so DST transitions between the
	// date and today cannot widen or shrink the window.
	windowStart := today.AddDate(0, 0, -constants.EditWindowDays)
	return !day.Before(windowStart)
}
