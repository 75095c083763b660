package tasks

import (
	"fmt"

	"github.com/mglynn/daytrack/internal/cli"
)

type TaskAddCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
	Title   string `arg:"" help:"Task title."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	task, err := ctx.Service.CreateTask(t.ID, c.Title)
	if err != nil {
		return err
	}

	fmt.Printf("Added task %q to tracker %q\n", task.Title, t.Name)
	return nil
}

type TaskListCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
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

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	for _, task := range tasks {
		fmt.Println(task.Title)
	}

	return nil
}

type TaskDeleteCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
	Task    string `arg:"" help:"Task title or id."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	task, err := ctx.ResolveTask(t.ID, c.Task)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Service.DeleteTask(task.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted task %q and its history\n", task.Title)
	return nil
}
