package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tkt-dev/tk/internal/ui"
)

var errFormAborted = errors.New("form aborted")

// runCreateForm asks for a title and description in a terminal form. The
// description field starts out with initialDescription.
func runCreateForm(initialDescription string) (title, description string, err error) {
	if !ui.IsTerminal() {
		return "", "", fmt.Errorf("--interactive needs a terminal; pass --title instead")
	}
	description = initialDescription
	confirmed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Brief summary of the ticket (required)").
				Placeholder("e.g., Fix crash when saving an empty draft").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),

			huh.NewText().
				Title("Description").
				Description("Details, steps to reproduce, links (optional)").
				CharLimit(5000).
				Value(&description),

			huh.NewConfirm().
				Title("Create this ticket?").
				Affirmative("Create").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", "", errFormAborted
		}
		return "", "", fmt.Errorf("form error: %w", err)
	}
	if !confirmed {
		return "", "", errFormAborted
	}
	return title, description, nil
}
