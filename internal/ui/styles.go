// Package ui provides terminal styling for tk CLI output.
// Uses the Ayu color theme with adaptive light/dark mode support.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tkt-dev/tk/internal/types"
)

// Ayu theme color palette
// Dark: https://terminalcolors.com/themes/ayu/dark/
// Light: https://terminalcolors.com/themes/ayu/light/
var (
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300", // ayu light bright green
		Dark:  "#c2d94c", // ayu dark bright green
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49", // ayu light bright yellow
		Dark:  "#ffb454", // ayu dark bright yellow
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171", // ayu light bright red
		Dark:  "#f07178", // ayu dark bright red
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99", // ayu light muted
		Dark:  "#6c7680", // ayu dark muted
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6", // ayu light bright blue
		Dark:  "#59c2ff", // ayu dark bright blue
	}
)

var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	TitleStyle  = lipgloss.NewStyle().Bold(true)
)

// statusStyles colours each ticket status: open work in accent blue, active
// work in yellow, blocked in red, finished in green.
var statusStyles = map[types.Status]lipgloss.Style{
	types.StatusToDo:       AccentStyle,
	types.StatusInProgress: WarnStyle,
	types.StatusBlocked:    FailStyle,
	types.StatusDone:       PassStyle,
}

// RenderPass renders text with pass (green) styling
func RenderPass(s string) string {
	return PassStyle.Render(s)
}

// RenderWarn renders text with warning (yellow) styling
func RenderWarn(s string) string {
	return WarnStyle.Render(s)
}

// RenderFail renders text with fail (red) styling
func RenderFail(s string) string {
	return FailStyle.Render(s)
}

// RenderMuted renders text with muted (gray) styling
func RenderMuted(s string) string {
	return MutedStyle.Render(s)
}

// RenderStatus renders the status display name in its status colour.
func RenderStatus(s types.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return s.DisplayName()
	}
	return style.Render(s.DisplayName())
}

// TicketOptions controls RenderTicket.
type TicketOptions struct {
	// Markdown renders the description through glamour when colour is on.
	Markdown bool
}

// RenderTicket renders t in the same layout as Ticket.String, with labels
// muted, the title bold and the status coloured. With colour off the output
// is byte-identical to t.String().
func RenderTicket(t types.Ticket, opts TicketOptions) string {
	if !colorEnabled {
		return t.String()
	}

	description := t.Description
	if opts.Markdown && strings.TrimSpace(description) != "" {
		description = "\n" + strings.TrimRight(RenderMarkdown(description), "\n")
	}

	var b strings.Builder
	b.WriteString(AccentStyle.Bold(true).Render("Ticket:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "\t%s%d\n", RenderMuted("Id:"), t.ID)
	fmt.Fprintf(&b, "\t%s%s\n", RenderMuted("Title:"), TitleStyle.Render(t.Title.String()))
	fmt.Fprintf(&b, "\t%s%s\n", RenderMuted("Description:"), description)
	fmt.Fprintf(&b, "\t%s%s\n", RenderMuted("Status:"), RenderStatus(t.Status))
	fmt.Fprintf(&b, "\t%s\n", RenderMuted("Comments:"))
	for _, c := range t.Comments {
		fmt.Fprintf(&b, "\t%s %s\n", RenderMuted("-"), c)
	}
	return b.String()
}
