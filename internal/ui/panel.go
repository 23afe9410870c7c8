package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/listlist/internal/model"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines with the current theme's border.
func Panel(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Header is the title line with live counts.
func Header(list model.List) string {
	t := Current()
	c, p := list.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("List List"),
		t.Success.Render(t.SymDone), c,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(list),
	)
}

// ItemLine renders one numbered row, e.g. " 2. ☑ Walk dog".
func ItemLine(index int, it model.Item, maxWidth int) string {
	t := Current()
	box, text := t.Muted.Render(t.BoxUnchecked), it.Text
	if maxWidth > 3 && len([]rune(text)) > maxWidth {
		text = string([]rune(text)[:maxWidth-3]) + "..."
	}
	if it.Checked {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(text)
	}
	return fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", index+1)), box, text)
}

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Error.Render("✖ "+msg))
}

func Hint(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Muted.Render(msg))
}
