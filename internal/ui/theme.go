package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and borders.
// All renderers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error lipgloss.Style
	Selected, Date                       lipgloss.Style
	Border                               lipgloss.Border
	BorderColor                          lipgloss.TerminalColor
	SymOK, SymFail, SymCursor            string
}

var current = newTheme("classic")

// SetTheme switches the palette: "classic" (default), "neon" or "mono".
func SetTheme(name string) { current = newTheme(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

func newTheme(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			Date:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			SymOK:       "✔", SymFail: "✖", SymCursor: "▶ ",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain,
			Selected: plain, Date: plain,
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
			SymOK:       "ok:", SymFail: "error:", SymCursor: "> ",
		}
	default: // classic
		return Theme{
			Title:       lipgloss.NewStyle().Bold(true),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
			Date:        lipgloss.NewStyle().Faint(true),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
			SymOK:       "✔", SymFail: "✖", SymCursor: "> ",
		}
	}
}
