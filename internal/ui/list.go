package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/m3ux/internal/editor"
)

var (
	_ list.Item         = entryItem{}
	_ list.ItemDelegate = entryDelegate{}
)

// entryItem is one channel row in a [list.Model].
type entryItem struct {
	position int
	name     string
	selected bool
	grabbed  bool
	hover    bool
}

func (i entryItem) FilterValue() string { return i.name }

// entryDelegate renders an [entryItem] on a single line.
type entryDelegate struct{}

func (d entryDelegate) Height() int                             { return 1 }
func (d entryDelegate) Spacing() int                            { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(entryItem)
	if !ok {
		return
	}

	check := "[ ]"
	if entry.selected {
		check = "[x]"
	}

	marker := " "
	switch {
	case entry.grabbed:
		marker = "≡"
	case entry.hover:
		marker = "→"
	}

	line := fmt.Sprintf("%s%s %3d. %s", marker, check, entry.position+1, entry.name)
	switch {
	case index == m.Index():
		line = styles.cursor.Render("> " + strings.TrimLeft(line, " "))
	case entry.selected:
		line = styles.marked.Render("  " + line)
	default:
		line = "  " + line
	}
	fmt.Fprint(w, line)
}

// entryItems builds list rows for doc. selected and drag may be nil.
func entryItems(doc editor.Document, selected map[int]bool, drag *editor.Drag) []list.Item {
	names := doc.Names()
	items := make([]list.Item, len(names))
	for i, name := range names {
		item := entryItem{position: i, name: name, selected: selected[i]}
		if drag != nil && drag.Active() {
			item.grabbed = i == drag.Source()
			item.hover = i == drag.Hover() && i != drag.Source()
		}
		items[i] = item
	}
	return items
}

func newEntryList(title string) list.Model {
	l := list.New(nil, entryDelegate{}, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}
