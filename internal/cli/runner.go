package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/idilsaglam/listlist/internal/model"
	"github.com/idilsaglam/listlist/internal/ui"
)

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp()
	defer app.close()

	cmd := newRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	code := exitCode(err)
	if code == 0 {
		return 0
	}
	ui.Fail(stderr, err.Error())
	if code == 2 {
		ui.Hint(stderr, "Hint: run `listlist --help` for usage")
	}
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case isUsage(err):
		return 2
	// cobra reports these as plain errors.
	case strings.HasPrefix(err.Error(), "unknown command"),
		strings.HasPrefix(err.Error(), "unknown flag"),
		strings.HasPrefix(err.Error(), "unknown shorthand flag"):
		return 2
	case errors.Is(err, context.Canceled):
		return 0
	}
	return 1
}

// -------------- rendering helpers --------------

func listPanel(items model.List, group bool) string {
	c, p := items.Stats()
	lines := []string{
		ui.Header(items),
		ui.Current().Muted.Render(ui.ProgressBar(c, c+p, 28)),
		"",
	}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items, nil)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.Current().Muted.Render("Tip: add with `listlist add \"Buy milk\"`"))
	return ui.Panel(lines)
}

// flatLines numbers items by their position in the full list; index maps a
// subset back to those positions.
func flatLines(items model.List, index []int) []string {
	if len(items) == 0 {
		return []string{ui.Current().Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		n := i
		if index != nil {
			n = index[i]
		}
		out = append(out, ui.ItemLine(n, it, 80))
	}
	return out
}

func groupLines(items model.List) []string {
	var pend, done model.List
	var pendIdx, doneIdx []int
	for i, it := range items {
		if it.Checked {
			done, doneIdx = append(done, it), append(doneIdx, i)
		} else {
			pend, pendIdx = append(pend, it), append(pendIdx, i)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, pendIdx)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done, doneIdx)...)
	}
	return lines
}

func markdown(items model.List) string {
	var b strings.Builder
	b.WriteString("# List List\n\n")
	if len(items) == 0 {
		b.WriteString("_no items_\n")
		return b.String()
	}
	for _, it := range items {
		box := " "
		if it.Checked {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, it.Text)
	}
	return b.String()
}
