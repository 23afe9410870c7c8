// Package tui is the interactive list: a Bubble Tea program over a
// liststore.Store. Every key that changes the list commits through the store
// immediately, so there is nothing to write back on quit.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/listlist/internal/importer"
	"github.com/idilsaglam/listlist/internal/liststore"
	"github.com/idilsaglam/listlist/internal/model"
	"github.com/idilsaglam/listlist/internal/ui"
)

// Options wires the program to its collaborators.
type Options struct {
	Store *liststore.Store
	// Reconciler, when its state is PendingConflict, opens the import dialog first.
	Reconciler *importer.Reconciler
	ShareLink  func() string
	Copy       func(string) error
	Log        *slog.Logger
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConflict
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct {
	ID      string
	Text    string
	Checked bool
}

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

func toListItems(l model.List) []list.Item {
	out := make([]list.Item, 0, len(l))
	for _, it := range l {
		out = append(out, listItem{ID: it.ID, Text: it.Text, Checked: it.Checked})
	}
	return out
}

// itemDelegate renders one item per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	t := ui.Current()

	box, text := t.Muted.Render(t.BoxUnchecked), it.Text
	if it.Checked {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(it.Text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

var (
	addKey       = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey      = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleKey    = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check"))
	deleteKey    = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	delCheckKey  = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete checked"))
	delAllKey    = key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete all"))
	undoKey      = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	moveUpKey    = key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up"))
	moveDownKey  = key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down"))
	shareKey     = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "copy share link"))
	quitKey      = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit"))
	submitKey    = key.NewBinding(key.WithKeys("enter"))
	cancelKey    = key.NewBinding(key.WithKeys("esc"))
	mergeKey     = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge"))
	overwriteKey = key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overwrite"))
	cancelImport = key.NewBinding(key.WithKeys("c", "esc"), key.WithHelp("c", "cancel"))
)

// confirmation tracks the two-press guard on bulk deletes.
type confirmation int

const (
	confirmNone confirmation = iota
	confirmChecked
	confirmAll
)

type Model struct {
	ctx context.Context
	opt Options
	log *slog.Logger

	list list.Model
	mode mode

	ta       textarea.Model // add, multi-line
	ti       textinput.Model
	editID   string
	inputErr string

	confirm confirmation
	status  string
	isError bool

	width, height int
}

// New builds the model from the store's current list.
func New(ctx context.Context, opt Options) Model {
	l := list.New(toListItems(opt.Store.Items()), itemDelegate{}, 80, 20)
	l.Title = ui.Header(opt.Store.Items())
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.DisableQuitKeybindings()

	short := []key.Binding{addKey, toggleKey, deleteKey, undoKey, shareKey}
	full := []key.Binding{addKey, editKey, toggleKey, deleteKey, delCheckKey, delAllKey, undoKey, moveUpKey, moveDownKey, shareKey, quitKey}
	l.AdditionalShortHelpKeys = func() []key.Binding { return short }
	l.AdditionalFullHelpKeys = func() []key.Binding { return full }

	ta := textarea.New()
	ta.Placeholder = "One item per line (alt+enter for a new line)"
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Edit item..."
	ti.CharLimit = 500

	log := opt.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := Model{ctx: ctx, opt: opt, log: log, list: l, ta: ta, ti: ti, width: 80, height: 24}
	if opt.Reconciler != nil && opt.Reconciler.State() == importer.PendingConflict {
		m.mode = modeConflict
	}
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, opt Options) error {
	p := tea.NewProgram(New(ctx, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	switch m.mode {
	case modeConflict:
		return m.updateConflict(msg)
	case modeAdd:
		return m.updateAdd(msg)
	case modeEdit:
		return m.updateEdit(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	// While the filter prompt is open every key belongs to it.
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	// Any key other than a repeat of the same bulk delete disarms it.
	if !key.Matches(km, delCheckKey, delAllKey) {
		m.confirm = confirmNone
	}

	switch {
	case key.Matches(km, quitKey):
		if km.String() == "esc" && m.list.FilterState() == list.FilterApplied {
			m.list.ResetFilter()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(km, toggleKey):
		if it, ok := m.selected(); ok {
			return m.apply(m.opt.Store.ToggleChecked(m.ctx, it.ID))
		}
		return m, nil

	case key.Matches(km, addKey):
		m.mode = modeAdd
		m.inputErr = ""
		m.ta.Reset()
		m.resize()
		cmd := m.ta.Focus()
		return m, cmd

	case key.Matches(km, editKey):
		if it, ok := m.selected(); ok {
			m.mode = modeEdit
			m.editID = it.ID
			m.inputErr = ""
			m.ti.SetValue(it.Text)
			m.ti.CursorEnd()
			m.resize()
			cmd := m.ti.Focus()
			return m, cmd
		}
		return m, nil

	case key.Matches(km, deleteKey):
		if it, ok := m.selected(); ok {
			mm, cmd := m.apply(m.opt.Store.Remove(m.ctx, it.ID))
			return mm.reportDeleted(cmd)
		}
		return m, nil

	case key.Matches(km, delCheckKey):
		if !m.opt.Store.Items().AnyChecked() {
			m.setStatus("nothing is checked", false)
			return m, nil
		}
		if m.confirm != confirmChecked {
			m.confirm = confirmChecked
			m.setStatus("Are you sure? Press x again to delete all checked items", false)
			return m, nil
		}
		m.confirm = confirmNone
		mm, cmd := m.apply(m.opt.Store.RemoveWhereChecked(m.ctx))
		return mm.reportDeleted(cmd)

	case key.Matches(km, delAllKey):
		if m.confirm != confirmAll {
			m.confirm = confirmAll
			m.setStatus("Are you sure? Press X again to delete every item", false)
			return m, nil
		}
		m.confirm = confirmNone
		mm, cmd := m.apply(m.opt.Store.RemoveAll(m.ctx))
		return mm.reportDeleted(cmd)

	case key.Matches(km, undoKey):
		if !m.opt.Store.CanUndo() {
			m.setStatus("nothing to undo", false)
			return m, nil
		}
		n := m.opt.Store.DeletedCount()
		mm, cmd := m.apply(m.opt.Store.Undo(m.ctx))
		if !mm.isError {
			mm.setStatus(fmt.Sprintf("%s restored", model.Plural(n)), false)
		}
		return mm, cmd

	case key.Matches(km, moveUpKey):
		return m.move(-1)

	case key.Matches(km, moveDownKey):
		return m.move(+1)

	case key.Matches(km, shareKey):
		return m.share()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, submitKey):
			raw := m.ta.Value()
			if strings.TrimSpace(raw) == "" {
				m.inputErr = "Nothing to add"
				return m, nil
			}
			m.closeInput()
			before := m.opt.Store.Len()
			mm, cmd := m.apply(m.opt.Store.Add(m.ctx, raw))
			if !mm.isError {
				mm.setStatus(fmt.Sprintf("%s added", model.Plural(mm.opt.Store.Len()-before)), false)
			}
			return mm, cmd
		case key.Matches(km, cancelKey):
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, submitKey):
			text := strings.TrimSpace(m.ti.Value())
			if text == "" {
				m.inputErr = "Text cannot be empty"
				return m, nil
			}
			id := m.editID
			m.closeInput()
			return m.apply(m.opt.Store.Edit(m.ctx, id, text))
		case key.Matches(km, cancelKey):
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateConflict(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	var res importer.Resolution
	switch {
	case key.Matches(km, mergeKey):
		res = importer.Merge
	case key.Matches(km, overwriteKey):
		res = importer.Overwrite
	case key.Matches(km, cancelImport):
		res = importer.Cancel
	case km.String() == "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}
	l, err := m.opt.Reconciler.Resolve(m.ctx, res)
	if err != nil {
		m.log.Error("resolve import", "resolution", res.String(), "err", err)
		m.setStatus("import failed: "+err.Error(), true)
		if m.opt.Reconciler.State() == importer.PendingConflict {
			return m, nil
		}
	} else {
		m.setStatus("import: "+res.String(), false)
	}
	m.mode = modeList
	return m, m.refresh(l)
}

// apply refreshes the view from a store result.
func (m Model) apply(l model.List, err error) (Model, tea.Cmd) {
	if err != nil {
		m.log.Error("commit", "err", err)
		m.setStatus("save failed: "+err.Error(), true)
	} else {
		m.status, m.isError = "", false
	}
	return m, m.refresh(l)
}

func (m Model) reportDeleted(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if !m.isError {
		m.setStatus(fmt.Sprintf("%s have been deleted · u to undo", model.Plural(m.opt.Store.DeletedCount())), false)
	}
	return m, cmd
}

func (m Model) move(delta int) (tea.Model, tea.Cmd) {
	if m.list.FilterState() != list.Unfiltered {
		m.setStatus("clear the filter to reorder", false)
		return m, nil
	}
	from := m.list.Index()
	to := from + delta
	if to < 0 || to >= len(m.list.Items()) {
		return m, nil
	}
	mm, cmd := m.apply(m.opt.Store.Reorder(m.ctx, from, to))
	mm.list.Select(to)
	return mm, cmd
}

func (m Model) share() (tea.Model, tea.Cmd) {
	if m.opt.ShareLink == nil {
		return m, nil
	}
	link := m.opt.ShareLink()
	if m.opt.Copy == nil {
		m.setStatus(link, false)
		return m, nil
	}
	if err := m.opt.Copy(link); err != nil {
		m.log.Warn("clipboard", "err", err)
		m.setStatus("could not copy, here is the link: "+link, true)
		return m, nil
	}
	m.setStatus("Link copied!", false)
	return m, nil
}

func (m *Model) refresh(l model.List) tea.Cmd {
	m.list.Title = ui.Header(l)
	return m.list.SetItems(toListItems(l))
}

func (m *Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.inputErr = ""
	m.editID = ""
	m.ta.Blur()
	m.ta.Reset()
	m.ti.Blur()
	m.ti.SetValue("")
	m.resize()
}

func (m *Model) setStatus(s string, isError bool) {
	m.status, m.isError = s, isError
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode == modeAdd {
		h -= 8
	} else if m.mode == modeEdit {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.ta.SetWidth(m.width - 8)
	m.ti.Width = m.width - 10
}

func (m Model) View() string {
	t := ui.Current()
	if m.mode == modeConflict {
		return ui.Panel([]string{m.conflictView()})
	}

	content := m.list.View()
	if m.mode == modeAdd || m.mode == modeEdit {
		title, input := "Add to list", m.ta.View()
		if m.mode == modeEdit {
			title, input = "Edit item", m.ti.View()
		}
		if m.inputErr != "" {
			title += " · " + t.Error.Render(m.inputErr)
		}
		box := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		content += "\n" + box.Render(title+"\n"+input)
	}
	if m.status != "" {
		style := t.Muted
		if m.isError {
			style = t.Error
		}
		content += "\n" + style.Render(m.status)
	}
	return ui.Panel([]string{content})
}

func (m Model) conflictView() string {
	t := ui.Current()
	in := m.opt.Reconciler.Incoming()
	return strings.Join([]string{
		t.Title.Render("Import conflict detected"),
		"",
		fmt.Sprintf("You are trying to import %s but there are already %s on your list. What do you want to do?",
			model.Plural(len(in)), model.Plural(m.opt.Store.Len())),
		"",
		t.Accent.Render("[m]") + " Merge   " + t.Accent.Render("[o]") + " Overwrite   " + t.Accent.Render("[c]") + " Cancel",
	}, "\n")
}
