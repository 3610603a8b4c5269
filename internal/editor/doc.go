// Package editor holds the editing core shared by every front end.
//
// The list operations ([RemoveAt], [MoveUp], [MoveDown], [MoveTo]) and the
// selection helpers ([SelectNonMatching], [SelectMatching]) are pure functions
// over an entry slice: they never modify their input and return a fresh slice.
//
// Front ends do not call them directly. Each user gesture becomes a [Command]
// that is handed to [Session.Update] together with the current [Document]; the
// session returns the next Document and an [Outcome] describing what the view
// should show (selection, cursor, status message). A failed command returns
// the Document it was given, untouched.
//
// Drag-and-drop reordering is split into [Drag.Start], [Drag.Motion] and
// [Drag.Drop]; only Drop produces a command (a single MoveTo).
package editor
