package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by the "color" setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var colorEnabled = false

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor applies the NO_COLOR / CLICOLOR conventions
// (https://no-color.org, https://bixense.com/clicolors/):
//   - NO_COLOR set to anything disables colour and wins over everything else
//   - CLICOLOR=0 disables colour
//   - CLICOLOR_FORCE set to anything but 0 enables colour even when piped
//   - otherwise colour follows whether stdout is a terminal
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	return IsTerminal()
}

// ConfigureColor decides whether output is coloured for this process and
// sets the lipgloss renderer's profile accordingly. With colour off every
// Render* helper returns its input unchanged.
func ConfigureColor(mode string) error {
	switch mode {
	case ColorNever:
		colorEnabled = false
	case ColorAlways:
		colorEnabled = true
	case ColorAuto, "":
		colorEnabled = ShouldUseColor()
	default:
		return fmt.Errorf("invalid color mode %q (valid: auto, always, never)", mode)
	}

	if !colorEnabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return nil
	}
	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	if profile == termenv.Ascii {
		// Forced colour on a pipe: pick a profile every ANSI terminal handles.
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
	return nil
}

// ColorEnabled reports the decision made by the last ConfigureColor call.
func ColorEnabled() bool {
	return colorEnabled
}
