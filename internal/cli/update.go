package cli

import (
	"github.com/charmbracelet/huh"

	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/tracker"
)

// TrackerRename builds a partial update that only changes the name.
func TrackerRename(name string) tracker.TrackerUpdate {
	return tracker.TrackerUpdate{Name: &name}
}

// TrackerSetIcon builds a partial update that only replaces the icon.
func TrackerSetIcon(icon *models.IconSpec) tracker.TrackerUpdate {
	return tracker.TrackerUpdate{Icon: icon}
}

// TrackerClearIcon builds a partial update that removes the icon.
func TrackerClearIcon() tracker.TrackerUpdate {
	return tracker.TrackerUpdate{ClearIcon: true}
}

// Confirm prompts the user with a yes/no form; affirmative labels the
// action button.
func Confirm(message, affirmative string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// ConfirmDelete prompts before a destructive delete.
func ConfirmDelete(message string) (bool, error) {
	return Confirm(message, "Delete")
}
