package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mglynn/daytrack/internal/backup"
	"github.com/mglynn/daytrack/internal/constants"
	"github.com/mglynn/daytrack/internal/logger"
	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/storage"
	"github.com/mglynn/daytrack/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Service *tracker.Service
	Debug   bool
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveTracker finds a tracker by exact name or id.
func (c *Context) ResolveTracker(nameOrID string) (models.Tracker, error) {
	trackers, err := c.Service.ListTrackers()
	if err != nil {
		return models.Tracker{}, err
	}
	for _, t := range trackers {
		if t.Name == nameOrID || t.ID == nameOrID {
			return t, nil
		}
	}
	return models.Tracker{}, fmt.Errorf("tracker %q not found", nameOrID)
}

// ResolveTask finds a task in a tracker by exact title or id.
func (c *Context) ResolveTask(trackerID, titleOrID string) (models.Task, error) {
	tasks, err := c.Service.ListTasks(trackerID)
	if err != nil {
		return models.Task{}, err
	}
	for _, t := range tasks {
		if t.Title == titleOrID || t.ID == titleOrID {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("task %q not found", titleOrID)
}

// ResolveDate validates a YYYY-MM-DD flag value, defaulting to today.
func ResolveDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format(constants.DateFormat), nil
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// FormatIcon renders a tracker icon for plain-text output.
func FormatIcon(icon *models.IconSpec) string {
	if icon == nil {
		return ""
	}
	switch icon.Kind {
	case models.IconEmoji:
		return icon.Glyph
	case models.IconNamed:
		if icon.Color != "" {
			return fmt.Sprintf("[%s %s]", icon.Name, icon.Color)
		}
		return fmt.Sprintf("[%s]", icon.Name)
	default:
		return ""
	}
}

// ParseIconSpec builds an IconSpec from command flags: an emoji glyph wins,
// otherwise a named icon with optional color.
func ParseIconSpec(emoji, name, color string) (*models.IconSpec, error) {
	emoji = strings.TrimSpace(emoji)
	name = strings.TrimSpace(name)
	if emoji != "" && name != "" {
		return nil, fmt.Errorf("specify either an emoji or an icon name, not both")
	}
	if emoji != "" {
		return &models.IconSpec{Kind: models.IconEmoji, Glyph: emoji}, nil
	}
	if name != "" {
		return &models.IconSpec{Kind: models.IconNamed, Name: name, Color: color}, nil
	}
	return nil, nil
}
