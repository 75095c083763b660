// Package days holds the day-centric commands: toggling and rating today's
// tasks and printing per-day summaries.
package days

import (
	"fmt"
	"time"

	"github.com/mglynn/daytrack/internal/cli"
	"github.com/mglynn/daytrack/internal/projection"
)

type DoneCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
	Task    string `arg:"" help:"Task title or id."`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	date, err := cli.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if !projection.CanEdit(date, t.CreatedTime(), time.Now()) {
		return fmt.Errorf("%s is outside the edit window for tracker %q", date, t.Name)
	}

	task, err := ctx.ResolveTask(t.ID, c.Task)
	if err != nil {
		return err
	}

	completion, err := ctx.Service.ToggleCompletion(task.ID, t.ID, date)
	if err != nil {
		return err
	}

	if completion.Completed {
		fmt.Printf("Marked %q done for %s\n", task.Title, date)
	} else {
		fmt.Printf("Unmarked %q for %s\n", task.Title, date)
	}
	return nil
}

type RateCmd struct {
	Tracker string  `arg:"" help:"Tracker name or id."`
	Task    string  `arg:"" help:"Task title or id."`
	Rating  float64 `arg:"" help:"Rating from 0 to 5 in 0.5 steps."`
	Date    string  `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *RateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	date, err := cli.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if !projection.CanEdit(date, t.CreatedTime(), time.Now()) {
		return fmt.Errorf("%s is outside the edit window for tracker %q", date, t.Name)
	}

	task, err := ctx.ResolveTask(t.ID, c.Task)
	if err != nil {
		return err
	}

	if _, err := ctx.Service.SetRating(task.ID, t.ID, date, c.Rating); err != nil {
		return err
	}

	fmt.Printf("Rated %q %.1f for %s\n", task.Title, c.Rating, date)
	return nil
}

type TodayCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	date, err := cli.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	tasks, err := ctx.Service.ListTasks(t.ID)
	if err != nil {
		return err
	}
	completions, err := ctx.Service.CompletionsOn(t.ID, date)
	if err != nil {
		return err
	}

	active, err := projection.ActiveTasksOn(tasks, date, time.Local)
	if err != nil {
		return err
	}

	if len(active) == 0 {
		fmt.Printf("No tasks for %s on %s.\n", t.Name, date)
		return nil
	}

	fmt.Printf("%s - %s\n", t.Name, date)
	for _, task := range active {
		mark := "[ ]"
		rating := ""
		if c, ok := projection.CompletionFor(completions, date, task.ID); ok {
			if c.Completed {
				mark = "[x]"
			}
			if c.Rating > 0 {
				rating = fmt.Sprintf(" (%.1f)", c.Rating)
			}
		}
		fmt.Printf("  %s %s%s\n", mark, task.Title, rating)
	}

	stats, err := projection.StatsOn(tasks, completions, date, time.Local)
	if err != nil {
		return err
	}
	fmt.Printf("%d/%d done (%.0f%%)\n", stats.Completed, stats.Total, stats.CompletionRate())

	return nil
}

type StatsCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	date, err := cli.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	tasks, err := ctx.Service.ListTasks(t.ID)
	if err != nil {
		return err
	}
	completions, err := ctx.Service.CompletionsOn(t.ID, date)
	if err != nil {
		return err
	}

	stats, err := projection.StatsOn(tasks, completions, date, time.Local)
	if err != nil {
		return err
	}

	fmt.Printf("%s on %s\n", t.Name, date)
	fmt.Printf("  completed:  %d/%d\n", stats.Completed, stats.Total)
	fmt.Printf("  rate:       %.1f%%\n", stats.CompletionRate())
	fmt.Printf("  avg rating: %.2f\n", projection.AverageRating(completions, date))

	return nil
}

type LogCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
	Days    int    `help:"Limit output to the last N days (0 = since creation)." default:"0"`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	tasks, err := ctx.Service.ListTasks(t.ID)
	if err != nil {
		return err
	}
	completions, err := ctx.Service.ListCompletions(t.ID)
	if err != nil {
		return err
	}

	var dates []string
	for date := range projection.CalendarDays(t.CreatedTime(), time.Now()) {
		dates = append(dates, date)
	}
	if c.Days > 0 && len(dates) > c.Days {
		dates = dates[len(dates)-c.Days:]
	}

	for _, date := range dates {
		stats, err := projection.StatsOn(tasks, completions, date, time.Local)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %d/%d  %.0f%%\n", date, stats.Completed, stats.Total, stats.CompletionRate())
	}

	return nil
}
