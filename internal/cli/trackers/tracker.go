package trackers

import (
	"fmt"

	"github.com/mglynn/daytrack/internal/cli"
)

type TrackerAddCmd struct {
	Name  string `arg:"" help:"Tracker name."`
	Emoji string `help:"Emoji icon for the tracker."`
	Icon  string `help:"Named icon for the tracker."`
	Color string `help:"Color for a named icon (hex or name)."`
}

func (c *TrackerAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	icon, err := cli.ParseIconSpec(c.Emoji, c.Icon, c.Color)
	if err != nil {
		return err
	}

	t, err := ctx.Service.CreateTracker(c.Name, icon)
	if err != nil {
		return err
	}

	fmt.Printf("Added tracker: %s\n", t.Name)
	return nil
}

type TrackerListCmd struct{}

func (c *TrackerListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	trackers, err := ctx.Service.ListTrackers()
	if err != nil {
		return err
	}

	if len(trackers) == 0 {
		fmt.Println("No trackers found.")
		return nil
	}

	for _, t := range trackers {
		icon := cli.FormatIcon(t.Icon)
		if icon != "" {
			fmt.Printf("%s %s\n", icon, t.Name)
		} else {
			fmt.Println(t.Name)
		}
	}

	return nil
}

type TrackerRenameCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
	NewName string `arg:"" help:"New tracker name."`
}

func (c *TrackerRenameCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	if _, err := ctx.Service.UpdateTracker(t.ID, cli.TrackerRename(c.NewName)); err != nil {
		return err
	}

	fmt.Printf("Renamed tracker %q to %q\n", t.Name, c.NewName)
	return nil
}

type TrackerIconCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
	Emoji   string `help:"Emoji icon."`
	Icon    string `help:"Named icon."`
	Color   string `help:"Color for a named icon."`
	Clear   bool   `help:"Remove the tracker's icon."`
}

func (c *TrackerIconCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	if c.Clear {
		if _, err := ctx.Service.UpdateTracker(t.ID, cli.TrackerClearIcon()); err != nil {
			return err
		}
		fmt.Printf("Cleared icon for tracker %q\n", t.Name)
		return nil
	}

	icon, err := cli.ParseIconSpec(c.Emoji, c.Icon, c.Color)
	if err != nil {
		return err
	}
	if icon == nil {
		return fmt.Errorf("specify --emoji, --icon, or --clear")
	}

	if _, err := ctx.Service.UpdateTracker(t.ID, cli.TrackerSetIcon(icon)); err != nil {
		return err
	}

	fmt.Printf("Updated icon for tracker %q\n", t.Name)
	return nil
}

type TrackerDeleteCmd struct {
	Tracker string `arg:"" help:"Tracker name or id."`
	Force   bool   `help:"Skip confirmation."`
}

func (c *TrackerDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	t, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	if !c.Force {
		confirmed, err := cli.ConfirmDelete(fmt.Sprintf("Delete tracker %q and all of its tasks and history?", t.Name))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Service.DeleteTracker(t.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted tracker %q\n", t.Name)

	if next, ok, err := ctx.Service.NextSelection(); err == nil && ok {
		fmt.Printf("Current tracker is now %q\n", next.Name)
	}
	return nil
}
