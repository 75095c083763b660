package projection

import (
	"testing"
	"time"

	"github.com/mglynn/daytrack/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
	if err != nil {
		t.Fatalf("failed to parse time %q: %v", value, err)
	}
	return parsed
}

func TestActiveTasksOn(t *testing.T) {
	t.Run("task created mid-day is active that day", func(t *testing.T) {
		created := mustTime(t, "2024-06-15 14:30:00")
		tasks := []models.Task{
			{ID: "t1", TrackerID: "tr1", Title: "stretch", CreatedAt: created.UnixMilli()},
		}

		active, err := ActiveTasksOn(tasks, "2024-06-15", time.UTC)
		if err != nil {
			t.Fatalf("ActiveTasksOn() returned unexpected error: %v", err)
		}
		if len(active) != 1 {
			t.Errorf("ActiveTasksOn() returned %d tasks, want 1", len(active))
		}
	})

	t.Run("task created at last millisecond of the day is active", func(t *testing.T) {
		eod, err := EndOfDay("2024-06-15", time.UTC)
		if err != nil {
			t.Fatalf("EndOfDay() returned unexpected error: %v", err)
		}
		tasks := []models.Task{
			{ID: "t1", TrackerID: "tr1", Title: "stretch", CreatedAt: eod.UnixMilli()},
		}

		active, err := ActiveTasksOn(tasks, "2024-06-15", time.UTC)
		if err != nil {
			t.Fatalf("ActiveTasksOn() returned unexpected error: %v", err)
		}
		if len(active) != 1 {
			t.Errorf("ActiveTasksOn() returned %d tasks, want 1", len(active))
		}
	})

	t.Run("task is not active on earlier days", func(t *testing.T) {
		created := mustTime(t, "2024-06-15 00:00:00")
		tasks := []models.Task{
			{ID: "t1", TrackerID: "tr1", Title: "stretch", CreatedAt: created.UnixMilli()},
		}

		active, err := ActiveTasksOn(tasks, "2024-06-14", time.UTC)
		if err != nil {
			t.Fatalf("ActiveTasksOn() returned unexpected error: %v", err)
		}
		if len(active) != 0 {
			t.Errorf("ActiveTasksOn() returned %d tasks, want 0 for day before creation", len(active))
		}
	})

	t.Run("task stays active on later days", func(t *testing.T) {
		created := mustTime(t, "2024-06-15 23:00:00")
		tasks := []models.Task{
			{ID: "t1", TrackerID: "tr1", Title: "stretch", CreatedAt: created.UnixMilli()},
		}

		active, err := ActiveTasksOn(tasks, "2024-07-01", time.UTC)
		if err != nil {
			t.Fatalf("ActiveTasksOn() returned unexpected error: %v", err)
		}
		if len(active) != 1 {
			t.Errorf("ActiveTasksOn() returned %d tasks, want 1 for later day", len(active))
		}
	})

	t.Run("invalid date is an error", func(t *testing.T) {
		if _, err := ActiveTasksOn(nil, "not-a-date", time.UTC); err == nil {
			t.Error("ActiveTasksOn() expected error for invalid date, got nil")
		}
	})
}

func TestStatsOn(t *testing.T) {
	created := mustTime(t, "2024-06-01 08:00:00").UnixMilli()
	tasks := []models.Task{
		{ID: "t1", TrackerID: "tr1", Title: "a", CreatedAt: created},
		{ID: "t2", TrackerID: "tr1", Title: "b", CreatedAt: created},
		{ID: "t3", TrackerID: "tr1", Title: "c", CreatedAt: created},
	}

	t.Run("counts only true completions", func(t *testing.T) {
		completions := []models.TaskCompletion{
			{ID: "c1", TaskID: "t1", TrackerID: "tr1", Date: "2024-06-10", Completed: true},
			{ID: "c2", TaskID: "t2", TrackerID: "tr1", Date: "2024-06-10", Completed: false},
		}

		stats, err := StatsOn(tasks, completions, "2024-06-10", time.UTC)
		if err != nil {
			t.Fatalf("StatsOn() returned unexpected error: %v", err)
		}
		if stats.Completed != 1 || stats.Total != 3 {
			t.Errorf("StatsOn() = %d/%d, want 1/3", stats.Completed, stats.Total)
		}
	})

	t.Run("ignores completions from other days", func(t *testing.T) {
		completions := []models.TaskCompletion{
			{ID: "c1", TaskID: "t1", TrackerID: "tr1", Date: "2024-06-09", Completed: true},
		}

		stats, err := StatsOn(tasks, completions, "2024-06-10", time.UTC)
		if err != nil {
			t.Fatalf("StatsOn() returned unexpected error: %v", err)
		}
		if stats.Completed != 0 {
			t.Errorf("StatsOn().Completed = %d, want 0", stats.Completed)
		}
	})
}

func TestEndOfDayAcrossDSTTransitions(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	t.Run("fall-back day keeps end of day at 23:59:59", func(t *testing.T) {
		// 2024-11-03 is 25 hours long in New York.
		eod, err := EndOfDay("2024-11-03", ny)
		if err != nil {
			t.Fatalf("EndOfDay() returned unexpected error: %v", err)
		}
		if eod.Day() != 3 || eod.Hour() != 23 || eod.Minute() != 59 || eod.Second() != 59 {
			t.Errorf("EndOfDay() = %v, want 2024-11-03 23:59:59.999 local", eod)
		}
	})

	t.Run("spring-forward day keeps end of day on the same date", func(t *testing.T) {
		// 2024-03-10 is 23 hours long in New York.
		eod, err := EndOfDay("2024-03-10", ny)
		if err != nil {
			t.Fatalf("EndOfDay() returned unexpected error: %v", err)
		}
		if eod.Day() != 10 || eod.Hour() != 23 {
			t.Errorf("EndOfDay() = %v, want 2024-03-10 23:59:59.999 local", eod)
		}
	})

	t.Run("task created late on a fall-back day is active that day", func(t *testing.T) {
		created := time.Date(2024, 11, 3, 23, 30, 0, 0, ny)
		tasks := []models.Task{
			{ID: "t1", TrackerID: "tr1", Title: "stretch", CreatedAt: created.UnixMilli()},
		}

		active, err := ActiveTasksOn(tasks, "2024-11-03", ny)
		if err != nil {
			t.Fatalf("ActiveTasksOn() returned unexpected error: %v", err)
		}
		if len(active) != 1 {
			t.Errorf("ActiveTasksOn() returned %d tasks, want 1 on creation day", len(active))
		}
	})
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name  string
		stats DailyStats
		want  float64
	}{
		{"zero total", DailyStats{Completed: 0, Total: 0}, 0},
		{"half done", DailyStats{Completed: 1, Total: 2}, 50},
		{"all done", DailyStats{Completed: 3, Total: 3}, 100},
		{"none done", DailyStats{Completed: 0, Total: 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.CompletionRate(); got != tt.want {
				t.Errorf("CompletionRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverageRating(t *testing.T) {
	t.Run("zero ratings count toward the denominator", func(t *testing.T) {
		completions := []models.TaskCompletion{
			{ID: "c1", TaskID: "t1", Date: "2024-06-10", Completed: true, Rating: 0},
			{ID: "c2", TaskID: "t2", Date: "2024-06-10", Completed: true, Rating: 4},
		}

		if got := AverageRating(completions, "2024-06-10"); got != 2.0 {
			t.Errorf("AverageRating() = %v, want 2.0", got)
		}
	})

	t.Run("not-completed records still dilute the average", func(t *testing.T) {
		completions := []models.TaskCompletion{
			{ID: "c1", TaskID: "t1", Date: "2024-06-10", Completed: false, Rating: 0},
			{ID: "c2", TaskID: "t2", Date: "2024-06-10", Completed: true, Rating: 3},
		}

		if got := AverageRating(completions, "2024-06-10"); got != 1.5 {
			t.Errorf("AverageRating() = %v, want 1.5", got)
		}
	})

	t.Run("no records on the date returns zero", func(t *testing.T) {
		completions := []models.TaskCompletion{
			{ID: "c1", TaskID: "t1", Date: "2024-06-09", Completed: true, Rating: 5},
		}

		if got := AverageRating(completions, "2024-06-10"); got != 0 {
			t.Errorf("AverageRating() = %v, want 0", got)
		}
	})
}

func TestRemaining(t *testing.T) {
	created := mustTime(t, "2024-06-01 08:00:00").UnixMilli()
	tasks := []models.Task{
		{ID: "t1", TrackerID: "tr1", Title: "a", CreatedAt: created},
		{ID: "t2", TrackerID: "tr1", Title: "b", CreatedAt: created},
	}
	completions := []models.TaskCompletion{
		{ID: "c1", TaskID: "t1", TrackerID: "tr1", Date: "2024-06-10", Completed: true},
	}

	remaining, err := Remaining(tasks, completions, "2024-06-10", time.UTC)
	if err != nil {
		t.Fatalf("Remaining() returned unexpected error: %v", err)
	}
	if remaining != 1 {
		t.Errorf("Remaining() = %d, want 1", remaining)
	}
}

func TestCalendarDays(t *testing.T) {
	t.Run("inclusive range from creation to now", func(t *testing.T) {
		created := mustTime(t, "2024-01-01 15:00:00")
		now := mustTime(t, "2024-01-03 09:00:00")

		var days []string
		for d := range CalendarDays(created, now) {
			days = append(days, d)
		}

		want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
		if len(days) != len(want) {
			t.Fatalf("CalendarDays() yielded %d days, want %d: %v", len(days), len(want), days)
		}
		for i := range want {
			if days[i] != want[i] {
				t.Errorf("CalendarDays()[%d] = %s, want %s", i, days[i], want[i])
			}
		}
	})

	t.Run("same day yields one entry", func(t *testing.T) {
		created := mustTime(t, "2024-01-01 08:00:00")
		now := mustTime(t, "2024-01-01 20:00:00")

		count := 0
		for range CalendarDays(created, now) {
			count++
		}
		if count != 1 {
			t.Errorf("CalendarDays() yielded %d days, want 1", count)
		}
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		created := mustTime(t, "2024-01-01 08:00:00")
		now := mustTime(t, "2024-01-05 08:00:00")

		seq := CalendarDays(created, now)
		first := 0
		for range seq {
			first++
		}
		second := 0
		for range seq {
			second++
		}
		if first != second {
			t.Errorf("second iteration yielded %d days, want %d", second, first)
		}
	})

	t.Run("early break stops the walk", func(t *testing.T) {
		created := mustTime(t, "2024-01-01 08:00:00")
		now := mustTime(t, "2024-12-31 08:00:00")

		count := 0
		for range CalendarDays(created, now) {
			count++
			if count == 2 {
				break
			}
		}
		if count != 2 {
			t.Errorf("broke after %d days, want 2", count)
		}
	})
}

func TestCanEdit(t *testing.T) {
	created := mustTime(t, "2024-06-01 10:00:00")
	now := mustTime(t, "2024-06-10 12:00:00")

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"today", "2024-06-10", true},
		{"yesterday", "2024-06-09", true},
		{"two days back", "2024-06-08", false},
		{"tomorrow", "2024-06-11", false},
		{"before tracker creation", "2024-05-31", false},
		{"invalid date", "junk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEdit(tt.date, created, now); got != tt.want {
				t.Errorf("CanEdit(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestCanEditAcrossSpringForward(t *testing.T) {
	// 2024-03-10 is only 23 hours long in New York, so elapsed-hour math
	// would undercount how far back a date is. The window counts calendar
	// days regardless.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, ny)
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, ny)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"yesterday across the transition", "2024-03-10", true},
		{"two calendar days back", "2024-03-09", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEdit(tt.date, created, now); got != tt.want {
				t.Errorf("CanEdit(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestCanEditCreationDayAfterWindow(t *testing.T) {
	// Creation day itself falls out of the window once it is more than the
	// edit window behind today.
	created := mustTime(t, "2024-06-01 10:00:00")
	now := mustTime(t, "2024-06-10 12:00:00")

	if CanEdit("2024-06-01", created, now) {
		t.Error("CanEdit(creation day) = true, want false when outside edit window")
	}
}
