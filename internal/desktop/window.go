package desktop

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/m3ux/internal/editor"
	"github.com/desertthunder/m3ux/internal/shared"
)

const (
	WindowTitle  = "M3U Editor"
	WindowWidth  = 800
	WindowHeight = 500
)

// Options configures a [Window].
type Options struct {
	Exclude   string // auto-select picks entries whose name lacks this; defaults to "HD"
	Extension string // save dialog filter; defaults to ".m3u"
	Logger    *log.Logger
}

// Window is the main editor window.
type Window struct {
	app      fyne.App
	window   fyne.Window
	session  *editor.Session
	opts     Options
	doc      editor.Document
	selected map[int]bool
	cursor   int
	list     *widget.List
	status   *widget.Label
	sorter   *Sorter

	showError func(error)
	play      func(string) error
}

// NewWindow builds the main window on app. Call ShowAndRun on [Window.Window] to start.
func NewWindow(app fyne.App, session *editor.Session, opts Options) *Window {
	if opts.Exclude == "" {
		opts.Exclude = "HD"
	}
	if opts.Extension == "" {
		opts.Extension = ".m3u"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	w := &Window{
		app:      app,
		window:   app.NewWindow(WindowTitle),
		session:  session,
		opts:     opts,
		selected: map[int]bool{},
		cursor:   -1,
		play:     shared.OpenLocation,
	}
	w.showError = func(err error) { dialog.ShowError(err, w.window) }

	w.createUI()
	w.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	return w
}

// Window returns the underlying fyne window.
func (w *Window) Window() fyne.Window { return w.window }

// Document returns the document currently shown.
func (w *Window) Document() editor.Document { return w.doc }

func (w *Window) createUI() {
	w.list = widget.NewList(
		func() int { return w.doc.Len() },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewCheck("", nil), widget.NewLabel(""))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) { w.updateRow(id, obj) },
	)
	w.list.OnSelected = func(id widget.ListItemID) { w.cursor = id }
	w.list.OnUnselected = func(widget.ListItemID) { w.cursor = -1 }

	w.status = widget.NewLabel("No playlist open")

	toolbar := container.NewHBox(
		widget.NewButton("Open M3U", w.onOpen),
		widget.NewButton("Save M3U", w.onSave),
		widget.NewButton("Remove Selected", w.RemoveSelected),
		widget.NewButton("Sort Channels", w.ShowSorter),
		widget.NewButton(fmt.Sprintf("Auto-Select Non-%s", w.opts.Exclude), w.AutoSelect),
		widget.NewButton("Play", w.PlayCurrent),
	)

	content := container.NewBorder(
		toolbar,  // top
		w.status, // bottom
		nil,      // left
		nil,      // right
		w.list,   // center
	)
	w.window.SetContent(content)
}

func (w *Window) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	row, ok := obj.(*fyne.Container)
	if !ok || len(row.Objects) < 2 {
		return
	}
	check, _ := row.Objects[0].(*widget.Check)
	label, _ := row.Objects[1].(*widget.Label)
	if check == nil || label == nil {
		return
	}

	names := w.doc.Names()
	if id < 0 || id >= len(names) {
		return
	}

	check.OnChanged = nil
	check.SetChecked(w.selected[id])
	check.OnChanged = func(on bool) { w.SetSelected(id, on) }
	label.SetText(names[id])
}

// Open loads path into the window.
func (w *Window) Open(path string) error {
	if err := w.guardSorting("opening a file"); err != nil {
		return err
	}

	next, out, err := w.session.Update(w.doc, editor.Open(path))
	if err != nil {
		w.fail(err)
		return err
	}

	w.doc = next
	w.cursor = out.Cursor
	clear(w.selected)
	w.refresh(out.Message)
	return nil
}

// Save writes the document to path, or to the path it was opened from when path is empty.
func (w *Window) Save(path string) error {
	next, out, err := w.session.Update(w.doc, editor.Save(path))
	if err != nil {
		w.fail(err)
		return err
	}

	w.doc = next
	w.refresh(out.Message)
	return nil
}

// SetSelected marks or unmarks the entry at i.
func (w *Window) SetSelected(i int, on bool) {
	if i < 0 || i >= w.doc.Len() {
		return
	}
	if on {
		w.selected[i] = true
	} else {
		delete(w.selected, i)
	}
}

// Selection returns the selected positions in ascending order.
func (w *Window) Selection() []int {
	selection := make([]int, 0, len(w.selected))
	for i := range w.selected {
		selection = append(selection, i)
	}
	sort.Ints(selection)
	return selection
}

// RemoveSelected drops every selected entry.
func (w *Window) RemoveSelected() {
	if w.guardSorting("removing channels") != nil {
		return
	}

	next, out, err := w.session.Update(w.doc, editor.Remove(w.Selection()...))
	if err != nil {
		w.fail(err)
		return
	}

	w.doc = next
	if out.Changed {
		clear(w.selected)
		w.list.UnselectAll()
	}
	w.refresh(out.Message)
}

// AutoSelect replaces the selection with every entry whose name lacks the exclude substring.
func (w *Window) AutoSelect() {
	_, out, err := w.session.Update(w.doc, editor.AutoSelect(w.opts.Exclude))
	if err != nil {
		w.fail(err)
		return
	}

	clear(w.selected)
	for _, i := range out.Selection {
		w.selected[i] = true
	}
	w.refresh(out.Message)
}

// PlayCurrent hands the highlighted entry's location to the system player.
func (w *Window) PlayCurrent() {
	entries := w.doc.Entries()
	if w.cursor < 0 || w.cursor >= len(entries) {
		w.fail(fmt.Errorf("%w: no channel highlighted", shared.ErrNoDocument))
		return
	}

	entry := entries[w.cursor]
	if err := w.play(entry.Location); err != nil {
		w.fail(err)
		return
	}
	w.status.SetText(fmt.Sprintf("Playing %s", editor.DisplayName(entry)))
}

// ShowSorter opens the sort window on a copy of the document.
func (w *Window) ShowSorter() {
	if !w.doc.IsOpen() {
		w.fail(fmt.Errorf("%w: nothing to sort", shared.ErrNoDocument))
		return
	}
	if w.sorter != nil {
		w.sorter.Window().RequestFocus()
		return
	}

	w.sorter = NewSorter(w.app, w.session, w.doc, w.applyOrder)
	w.sorter.Window().SetOnClosed(func() { w.sorter = nil })
	w.sorter.Window().Show()
}

// applyOrder adopts the entry order from the sort window. Path and save state stay with
// the main window's document.
func (w *Window) applyOrder(doc editor.Document) {
	if !slices.Equal(w.doc.Entries(), doc.Entries()) {
		w.doc.Playlist = doc.Playlist
		w.doc.Dirty = true
	}
	clear(w.selected)
	w.list.UnselectAll()
	w.refresh("Applied new order")
}

// guardSorting fails with [shared.ErrBusy] while the sort window owns the entry order.
func (w *Window) guardSorting(action string) error {
	if w.sorter == nil {
		return nil
	}
	err := fmt.Errorf("%w: close the Sort Channels window before %s", shared.ErrBusy, action)
	w.fail(err)
	w.sorter.Window().RequestFocus()
	return err
}

func (w *Window) onOpen() {
	if w.guardSorting("opening a file") != nil {
		return
	}

	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			w.fail(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		_ = w.Open(path)
	}, w.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{w.opts.Extension}))
	open.Show()
}

func (w *Window) onSave() {
	if !w.doc.IsOpen() {
		w.fail(fmt.Errorf("%w: nothing to save", shared.ErrNoDocument))
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			w.fail(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := w.Save(path); err != nil {
			return
		}
		// the dialog creates the chosen file; drop it when an extension was appended
		if w.doc.Path != path {
			if info, statErr := os.Stat(path); statErr == nil && info.Size() == 0 {
				os.Remove(path)
			}
		}
	}, w.window)
	save.SetFileName(shared.BaseName(w.doc.Path) + w.opts.Extension)
	save.SetFilter(storage.NewExtensionFileFilter([]string{w.opts.Extension}))
	save.Show()
}

func (w *Window) refresh(message string) {
	title := WindowTitle
	if w.doc.IsOpen() {
		title = fmt.Sprintf("%s - %s", WindowTitle, shared.BaseName(w.doc.Path))
		if w.doc.Dirty {
			title += " *"
		}
	}
	w.window.SetTitle(title)
	w.status.SetText(message)
	w.list.Refresh()
}

func (w *Window) fail(err error) {
	if editor.IsUserError(err) {
		w.opts.Logger.Warn("desktop action failed", "error", err)
	} else {
		w.opts.Logger.Error("unexpected desktop error", "error", err)
	}
	w.status.SetText("Error: " + err.Error())
	w.showError(err)
}
