package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/mglynn/daytrack/internal/cli"
	"github.com/mglynn/daytrack/internal/cli/backups"
	"github.com/mglynn/daytrack/internal/cli/days"
	"github.com/mglynn/daytrack/internal/cli/system"
	"github.com/mglynn/daytrack/internal/cli/tasks"
	"github.com/mglynn/daytrack/internal/cli/trackers"
	"github.com/mglynn/daytrack/internal/constants"
	cliErrors "github.com/mglynn/daytrack/internal/errors"
	"github.com/mglynn/daytrack/internal/logger"
	"github.com/mglynn/daytrack/internal/storage/sqlite"
	"github.com/mglynn/daytrack/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/daytrack/daytrack.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize daytrack storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Watch   system.WatchCmd   `cmd:"" help:"Run the notification scheduler in the foreground."`
	Tracker struct {
		Add    trackers.TrackerAddCmd    `cmd:"" help:"Add a new tracker."`
		List   trackers.TrackerListCmd   `cmd:"" help:"List all trackers."`
		Rename trackers.TrackerRenameCmd `cmd:"" help:"Rename a tracker."`
		Icon   trackers.TrackerIconCmd   `cmd:"" help:"Set or clear a tracker's icon."`
		Delete trackers.TrackerDeleteCmd `cmd:"" help:"Delete a tracker and everything under it."`
	} `cmd:"" help:"Manage trackers."`
	Task struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a task to a tracker."`
		List   tasks.TaskListCmd   `cmd:"" help:"List a tracker's tasks."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task and its history."`
	} `cmd:"" help:"Manage tasks."`
	Done  days.DoneCmd  `cmd:"" help:"Toggle a task's completion for a day."`
	Rate  days.RateCmd  `cmd:"" help:"Rate a task for a day."`
	Today days.TodayCmd `cmd:"" help:"Show a tracker's tasks for a day."`
	Stats days.StatsCmd `cmd:"" help:"Show completion stats for a day."`
	Log   days.LogCmd   `cmd:"" help:"Show per-day history since a tracker was created."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Run one notification check (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Local-first habit and task tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := sqlite.NewStore(CLI.Config)

	appCtx := &cli.Context{
		Store:   store,
		Service: tracker.NewService(store),
		Debug:   CLI.Debug,
	}

	// Load the store before running the command. Init and migrate handle
	// their own opening.
	if sel := ctx.Selected(); sel != nil && sel.Name != "init" && sel.Name != "migrate" {
		if err := store.Load(); err != nil {
			cliErrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		cliErrors.Fatal(err)
	}
}
