package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/m3ux/internal/editor"
	"github.com/desertthunder/m3ux/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	EditView ViewState = iota
	SortView
	PromptView
)

type promptKind int

const (
	promptOpen promptKind = iota
	promptSave
)

// Options configures a [Model].
type Options struct {
	Path    string // opened by Init when set
	Exclude string // auto-select picks entries whose name lacks this; defaults to "HD"
}

// Model represents the TUI application state.
type Model struct {
	session  *editor.Session
	opts     Options
	view     ViewState
	doc      editor.Document
	selected map[int]bool
	entries  list.Model
	sortDoc  editor.Document
	sorter   list.Model
	drag     editor.Drag
	prompt   textinput.Model
	asking   promptKind
	status   string
	failed   bool
	busy     bool
	width    int
	height   int
	help     help.Model
	keys     keyMap
	play     func(string) error
}

// NewModel creates a new TUI model around session.
func NewModel(session *editor.Session, opts Options) *Model {
	if opts.Exclude == "" {
		opts.Exclude = "HD"
	}

	input := textinput.New()
	input.Placeholder = "path/to/playlist.m3u"
	input.CharLimit = 4096

	m := &Model{
		session:  session,
		opts:     opts,
		view:     EditView,
		selected: map[int]bool{},
		entries:  newEntryList("M3U Editor"),
		sorter:   newEntryList("Sort Channels"),
		prompt:   input,
		help:     help.New(),
		keys:     newKeyMap(),
		play:     shared.OpenLocation,
	}
	m.setSize(80, 24)
	return m
}

// Init opens the initial file, if any.
func (m *Model) Init() tea.Cmd {
	if m.opts.Path == "" {
		return nil
	}
	return m.openFile(m.opts.Path)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		switch m.view {
		case EditView:
			return m.handleEditKeys(msg)
		case SortView:
			return m.handleSortKeys(msg)
		case PromptView:
			return m.handlePromptKeys(msg)
		}
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SortView:
		return m.renderSorter()
	case PromptView:
		return m.renderPrompt()
	default:
		return m.renderEditor()
	}
}

// Document returns the document currently shown.
func (m *Model) Document() editor.Document {
	return m.doc
}

// Selection returns the selected positions in ascending order.
func (m *Model) Selection() []int {
	selection := make([]int, 0, len(m.selected))
	for i, on := range m.selected {
		if on {
			selection = append(selection, i)
		}
	}
	sort.Ints(selection)
	return selection
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgDocumentOpened, MsgDocumentSaved:
		res, ok := msg.data.(commandResult)
		if !ok {
			return m, nil
		}
		m.busy = false
		if res.err != nil {
			m.setError(res.err)
			return m, nil
		}
		m.doc = res.doc
		if msg.kind == MsgDocumentOpened {
			clear(m.selected)
		}
		m.refreshEntries(res.outcome.Cursor)
		m.setStatus(res.outcome.Message)

	case MsgLocationPlayed:
		res, ok := msg.data.(playResult)
		if !ok {
			return m, nil
		}
		if res.err != nil {
			m.setError(res.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Playing %s", res.name))
	}
	return m, nil
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	// an open or save in flight will replace the document; edits wait for it
	case m.busy && key.Matches(msg, m.keys.documentKeys()...):
		m.setStatus("Busy: wait for the current file operation to finish")
		return m, nil

	case key.Matches(msg, m.keys.open):
		return m.ask(promptOpen, "")

	case key.Matches(msg, m.keys.save):
		if !m.doc.IsOpen() {
			m.setError(fmt.Errorf("%w: nothing to save", shared.ErrNoDocument))
			return m, nil
		}
		return m.ask(promptSave, m.doc.Path)

	case key.Matches(msg, m.keys.toggle):
		m.toggle(m.entries.Index())
		return m, nil

	case key.Matches(msg, m.keys.auto):
		out, ok := m.apply(editor.AutoSelect(m.opts.Exclude))
		if ok {
			clear(m.selected)
			for _, i := range out.Selection {
				m.selected[i] = true
			}
			m.refreshEntries(out.Cursor)
		}
		return m, nil

	case key.Matches(msg, m.keys.remove):
		out, ok := m.apply(editor.Remove(m.Selection()...))
		if ok && out.Changed {
			clear(m.selected)
			m.refreshEntries(out.Cursor)
		}
		return m, nil

	case key.Matches(msg, m.keys.sort):
		if !m.doc.IsOpen() {
			m.setError(fmt.Errorf("%w: nothing to sort", shared.ErrNoDocument))
			return m, nil
		}
		m.openSorter()
		return m, nil

	case key.Matches(msg, m.keys.play):
		return m, m.playCurrent()

	case key.Matches(msg, m.keys.back):
		clear(m.selected)
		m.refreshEntries(m.entries.Index())
		return m, nil
	}

	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)
	return m, cmd
}

func (m *Model) handleSortKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		if m.drag.Active() {
			m.drag.Cancel()
			m.setStatus("Move cancelled")
			m.refreshSorter(m.sorter.Index())
			return m, nil
		}
		m.view = EditView
		m.setStatus("Sort discarded")
		return m, nil

	case key.Matches(msg, m.keys.apply):
		if m.drag.Active() {
			m.drop(m.sorter.Index())
			return m, nil
		}
		m.doc = m.sortDoc
		m.view = EditView
		clear(m.selected)
		m.refreshEntries(m.sorter.Index())
		m.setStatus("Applied new order")
		return m, nil

	case key.Matches(msg, m.keys.moveUp):
		m.sortWith(editor.MoveUpAt(m.sorter.Index()))
		return m, nil

	case key.Matches(msg, m.keys.moveDown):
		m.sortWith(editor.MoveDownAt(m.sorter.Index()))
		return m, nil

	case key.Matches(msg, m.keys.grab):
		i := m.sorter.Index()
		if m.drag.Active() {
			m.drop(i)
			return m, nil
		}
		if i >= 0 && i < m.sortDoc.Len() {
			m.drag.Start(i)
			m.setStatus(fmt.Sprintf("Moving %s", m.sortDoc.Names()[i]))
			m.refreshSorter(i)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.sorter, cmd = m.sorter.Update(msg)
	if m.drag.Active() {
		m.drag.Motion(m.sorter.Index(), m.sortDoc.Len())
		m.refreshSorter(m.sorter.Index())
	}
	return m, cmd
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.prompt.Blur()
		m.view = EditView
		m.setStatus("Cancelled")
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.prompt.Value())
		m.prompt.Blur()
		m.view = EditView
		if m.asking == promptSave {
			return m, m.saveFile(path)
		}
		return m, m.openFile(path)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case EditView:
		m.entries, cmd = m.entries.Update(msg)
	case SortView:
		m.sorter, cmd = m.sorter.Update(msg)
	case PromptView:
		m.prompt, cmd = m.prompt.Update(msg)
	}
	return m, cmd
}

// apply runs an in-memory edit synchronously.
func (m *Model) apply(cmd editor.Command) (editor.Outcome, bool) {
	next, out, err := m.session.Update(m.doc, cmd)
	if err != nil {
		m.setError(err)
		return out, false
	}
	m.doc = next
	m.setStatus(out.Message)
	return out, true
}

// openFile loads path off the render loop.
func (m *Model) openFile(path string) tea.Cmd {
	m.busy = true
	m.setStatus(fmt.Sprintf("Opening %s...", path))
	session, doc := m.session, m.doc
	return func() tea.Msg {
		next, out, err := session.Update(doc, editor.Open(path))
		return documentOpenedMsg(next, out, err)
	}
}

// saveFile writes the document off the render loop.
func (m *Model) saveFile(path string) tea.Cmd {
	m.busy = true
	m.setStatus(fmt.Sprintf("Saving %s...", path))
	session, doc := m.session, m.doc
	return func() tea.Msg {
		next, out, err := session.Update(doc, editor.Save(path))
		return documentSavedMsg(next, out, err)
	}
}

func (m *Model) playCurrent() tea.Cmd {
	i := m.entries.Index()
	entries := m.doc.Entries()
	if i < 0 || i >= len(entries) {
		m.setError(fmt.Errorf("%w: no channel under cursor", shared.ErrNoDocument))
		return nil
	}
	entry, play := entries[i], m.play
	return func() tea.Msg {
		return locationPlayedMsg(editor.DisplayName(entry), play(entry.Location))
	}
}

func (m *Model) ask(kind promptKind, value string) (tea.Model, tea.Cmd) {
	m.asking = kind
	m.view = PromptView
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	return m, m.prompt.Focus()
}

func (m *Model) toggle(i int) {
	if i < 0 || i >= m.doc.Len() {
		return
	}
	if m.selected[i] {
		delete(m.selected, i)
	} else {
		m.selected[i] = true
	}
	m.refreshEntries(i)
}

func (m *Model) openSorter() {
	m.sortDoc = m.doc
	m.drag.Cancel()
	m.view = SortView
	m.refreshSorter(m.entries.Index())
	m.setStatus("Reorder channels, enter applies, esc discards")
}

// sortWith applies a reorder to the working copy shown in the sort view.
func (m *Model) sortWith(cmd editor.Command) {
	next, out, err := m.session.Update(m.sortDoc, cmd)
	if err != nil {
		m.setError(err)
		return
	}
	m.sortDoc = next
	if out.Message != "" {
		m.setStatus(out.Message)
	}
	m.refreshSorter(out.Cursor)
}

func (m *Model) drop(i int) {
	cmd, ok := m.drag.Drop(i)
	if !ok {
		m.setStatus("Move cancelled")
		m.refreshSorter(i)
		return
	}
	m.sortWith(cmd)
}

func (m *Model) refreshEntries(cursor int) {
	m.entries.SetItems(entryItems(m.doc, m.selected, nil))
	m.entries.Title = m.title()
	if cursor >= 0 {
		m.entries.Select(cursor)
	}
}

func (m *Model) refreshSorter(cursor int) {
	m.sorter.SetItems(entryItems(m.sortDoc, nil, &m.drag))
	if cursor >= 0 {
		m.sorter.Select(cursor)
	}
}

func (m *Model) title() string {
	if !m.doc.IsOpen() {
		return "M3U Editor"
	}
	title := fmt.Sprintf("%s (%d channels)", shared.BaseName(m.doc.Path), m.doc.Len())
	if m.doc.Dirty {
		title += " *"
	}
	return title
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.entries.SetSize(max(width-4, 10), max(height-6, 3))
	m.sorter.SetSize(max(width-4, 10), max(height-6, 3))
	m.prompt.Width = max(width-10, 10)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.failed = true
}

func (m *Model) renderStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.failed:
		return styles.err.Render("Error: " + m.status)
	case m.busy:
		return styles.warn.Render(m.status)
	default:
		return styles.ok.Render(m.status)
	}
}

func (m *Model) renderEditor() string {
	body := m.entries.View()
	if !m.doc.IsOpen() {
		body = styles.title.Render("M3U Editor") + "\n" + styles.help.Render("No playlist open. Press o to open one.")
	}
	return fmt.Sprintf("%s\n%s\n%s", body, m.renderStatus(), m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) renderSorter() string {
	return fmt.Sprintf("%s\n%s\n%s", m.sorter.View(), m.renderStatus(), m.help.ShortHelpView(m.keys.sortHelp()))
}

func (m *Model) renderPrompt() string {
	title := "Open M3U"
	if m.asking == promptSave {
		title = "Save M3U"
	}
	return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render(title), m.prompt.View(), m.help.ShortHelpView(m.keys.promptHelp()))
}
