package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mglynn/daytrack/internal/cli"
	"github.com/mglynn/daytrack/internal/notifier"
	"github.com/mglynn/daytrack/internal/scheduler"
)

type WatchCmd struct{}

// Run keeps the notification scheduler alive in the foreground until the
// process is interrupted.
func (c *WatchCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	s := scheduler.New(ctx.Store, notifier.New())
	s.Start()
	defer s.Stop()

	fmt.Println("Watching for due notifications. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nStopping scheduler.")
	return nil
}
