package desktop

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/desertthunder/m3ux/internal/editor"
)

// Sorter is the reorder window. It edits a working copy and hands it back on Apply.
type Sorter struct {
	window  fyne.Window
	session *editor.Session
	doc     editor.Document
	cursor  int
	drag    editor.Drag
	list    *widget.List
	status  *widget.Label
	onApply func(editor.Document)
}

// NewSorter builds the sort window for doc. onApply receives the reordered document.
func NewSorter(app fyne.App, session *editor.Session, doc editor.Document, onApply func(editor.Document)) *Sorter {
	s := &Sorter{
		window:  app.NewWindow("Sort Channels"),
		session: session,
		doc:     doc,
		cursor:  -1,
		onApply: onApply,
	}
	s.createUI()
	s.window.Resize(fyne.NewSize(400, WindowHeight))
	return s
}

// Window returns the underlying fyne window.
func (s *Sorter) Window() fyne.Window { return s.window }

// Document returns the working copy.
func (s *Sorter) Document() editor.Document { return s.doc }

func (s *Sorter) createUI() {
	s.list = widget.NewList(
		func() int { return s.doc.Len() },
		func() fyne.CanvasObject { return newDragRow(s.onDrag, s.onDrop) },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row, ok := obj.(*dragRow)
			if !ok {
				return
			}
			names := s.doc.Names()
			if id < 0 || id >= len(names) {
				return
			}
			text := names[id]
			switch {
			case s.drag.Active() && id == s.drag.Source():
				text = "≡ " + text
			case s.drag.Active() && id == s.drag.Hover():
				text = "→ " + text
			}
			row.index = id
			row.SetText(text)
		},
	)
	s.list.OnSelected = func(id widget.ListItemID) { s.cursor = id }

	s.status = widget.NewLabel("Drag a channel or use Up/Down")

	buttons := container.NewHBox(
		widget.NewButton("Up", s.Up),
		widget.NewButton("Down", s.Down),
		widget.NewButton("Apply", s.Apply),
		widget.NewButton("Cancel", s.window.Close),
	)

	s.window.SetContent(container.NewBorder(nil, container.NewVBox(s.status, buttons), nil, nil, s.list))
}

// Up moves the highlighted entry one position earlier.
func (s *Sorter) Up() { s.run(editor.MoveUpAt(s.cursor)) }

// Down moves the highlighted entry one position later.
func (s *Sorter) Down() { s.run(editor.MoveDownAt(s.cursor)) }

// Apply hands the working copy to the main window and closes.
func (s *Sorter) Apply() {
	if s.onApply != nil {
		s.onApply(s.doc)
	}
	s.window.Close()
}

// Select highlights the entry at i.
func (s *Sorter) Select(i int) {
	s.list.Select(i)
	s.cursor = i
}

func (s *Sorter) run(cmd editor.Command) {
	if s.cursor < 0 {
		return
	}

	next, out, err := s.session.Update(s.doc, cmd)
	if err != nil {
		s.status.SetText("Error: " + err.Error())
		return
	}

	s.doc = next
	if out.Message != "" {
		s.status.SetText(out.Message)
	}
	s.list.Refresh()
	if out.Cursor >= 0 {
		s.Select(out.Cursor)
	}
}

// onDrag tracks a row being dragged offset rows from where it started.
func (s *Sorter) onDrag(source, offset int) {
	if !s.drag.Active() {
		s.drag.Start(source)
	}
	s.drag.Motion(source+offset, s.doc.Len())
	s.list.Refresh()
}

// onDrop finishes the drag at the last valid hover position.
func (s *Sorter) onDrop() {
	cmd, ok := s.drag.Drop(s.drag.Hover())
	if !ok {
		s.list.Refresh()
		return
	}
	s.cursor = cmd.From
	s.run(cmd)
}
