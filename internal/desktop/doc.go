// Package desktop implements the windowed playlist editor with fyne.
//
// The main window lists channel names with a checkbox per row and a toolbar of actions
// (open, save, remove selected, sort, auto-select, play). The sort window edits a working
// copy of the document with Up/Down buttons or by dragging a row, and Apply hands the new
// order back to the main window.
//
// Every edit goes through [editor.Session.Update], so the widgets only render a Document.
package desktop
