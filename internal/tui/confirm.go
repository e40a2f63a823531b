package tui

import (
	"errors"
	"fmt"

	huh "github.com/charmbracelet/huh"
)

// ConfirmOverwrite asks whether existing project documents below dir may be
// replaced. An aborted prompt counts as a no.
func ConfirmOverwrite(dir string, existing int) (bool, error) {
	overwrite := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite existing output?").
				Description(fmt.Sprintf("%s already holds %d project file(s).", dir, existing)).
				Affirmative("Overwrite").
				Negative("Cancel").
				Value(&overwrite),
		),
	).
		WithTheme(NewHuhTheme()).
		WithShowHelp(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}

	return overwrite, nil
}
