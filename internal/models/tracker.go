package models

import (
	"fmt"
	"time"
)

// IconKind tags the variant of a tracker icon.
type IconKind string

const (
	IconNamed IconKind = "named"
	IconEmoji IconKind = "emoji"
)

// IconSpec is the tracker's optional visual marker: either a named icon with
// a color, or a single emoji glyph. The tag keeps the two variants from ever
// being set at the same time.
type IconSpec struct {
	Kind  IconKind `json:"kind"`
	Name  string   `json:"name,omitempty"`
	Color string   `json:"color,omitempty"`
	Glyph string   `json:"glyph,omitempty"`
}

func (i IconSpec) Validate() error {
	switch i.Kind {
	case IconNamed:
		if i.Name == "" {
			return fmt.Errorf("named icon requires a name")
		}
		if i.Glyph != "" {
			return fmt.Errorf("named icon cannot carry an emoji glyph")
		}
	case IconEmoji:
		if i.Glyph == "" {
			return fmt.Errorf("emoji icon requires a glyph")
		}
		if i.Name != "" || i.Color != "" {
			return fmt.Errorf("emoji icon cannot carry a name or color")
		}
	default:
		return fmt.Errorf("unknown icon kind %q", i.Kind)
	}
	return nil
}

// Tracker is a named group of recurring daily tasks.
type Tracker struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      *IconSpec `json:"icon,omitempty"`
	CreatedAt int64     `json:"created_at"` // epoch milliseconds
}

func (t *Tracker) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tracker id cannot be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("tracker name cannot be empty")
	}
	if t.Icon != nil {
		if err := t.Icon.Validate(); err != nil {
			return fmt.Errorf("invalid tracker icon: %w", err)
		}
	}
	return nil
}

// CreatedTime returns the creation instant as a time.Time.
func (t Tracker) CreatedTime() time.Time {
	return time.UnixMilli(t.CreatedAt)
}
