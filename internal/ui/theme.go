package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, checkbox glyphs and panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done, Selected, Help                          lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

var current = themeNamed("classic")

// SetTheme selects classic (default), neon or mono.
func SetTheme(name string) { current = themeNamed(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

func themeNamed(name string) Theme {
	base := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:     "neon",
			Title:    base.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:    base.Foreground(lipgloss.Color("8")),
			Accent:   base.Foreground(lipgloss.Color("14")),
			Success:  base.Foreground(lipgloss.Color("10")),
			Error:    base.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  base.Foreground(lipgloss.Color("11")),
			Done:     base.Faint(true).Strikethrough(true),
			Selected: base.Bold(true).Foreground(lipgloss.Color("13")),
			Help:     base.Faint(true),

			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		return Theme{
			Name:     "mono",
			Title:    base.Bold(true),
			Muted:    base,
			Accent:   base,
			Success:  base,
			Error:    base.Bold(true),
			Pending:  base,
			Done:     base,
			Selected: base.Reverse(true),
			Help:     base,

			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		return Theme{
			Name:     "classic",
			Title:    base.Bold(true),
			Muted:    base.Faint(true),
			Accent:   base.Foreground(lipgloss.Color("12")),
			Success:  base.Foreground(lipgloss.Color("42")),
			Error:    base.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  base.Foreground(lipgloss.Color("214")),
			Done:     base.Faint(true).Strikethrough(true),
			Selected: base.Bold(true).Reverse(true),
			Help:     base.Faint(true),

			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}
