package system

import (
	"fmt"

	"github.com/mglynn/daytrack/internal/cli"
	"github.com/mglynn/daytrack/internal/notifier"
	"github.com/mglynn/daytrack/internal/scheduler"
)

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

// dryRunSink swallows notifications and echoes them to stdout.
type dryRunSink struct{}

func (dryRunSink) Available() error { return nil }

func (dryRunSink) Send(title, body string) error {
	fmt.Printf("[DryRun] %s: %s\n", title, body)
	return nil
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	var sink scheduler.Sink
	if c.DryRun {
		sink = dryRunSink{}
	} else {
		n := notifier.New()
		if err := n.Available(); err != nil {
			return fmt.Errorf("notification target unavailable: %w", err)
		}
		sink = n
	}

	s := scheduler.New(ctx.Store, sink)
	s.Poll()
	s.PurgeIfWeekend()

	return nil
}
