package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/m3ux/internal/editor"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgDocumentOpened MsgKind = iota
	MsgDocumentSaved
	MsgLocationPlayed
)

type commandResult struct {
	doc     editor.Document
	outcome editor.Outcome
	err     error
}

type playResult struct {
	name string
	err  error
}

// documentOpenedMsg is the constructor for [MsgDocumentOpened]
func documentOpenedMsg(doc editor.Document, out editor.Outcome, err error) Msg {
	return Msg{kind: MsgDocumentOpened, data: commandResult{doc, out, err}}
}

// documentSavedMsg is the constructor for [MsgDocumentSaved]
func documentSavedMsg(doc editor.Document, out editor.Outcome, err error) Msg {
	return Msg{kind: MsgDocumentSaved, data: commandResult{doc, out, err}}
}

// locationPlayedMsg is the constructor for [MsgLocationPlayed]
func locationPlayedMsg(name string, err error) Msg {
	return Msg{kind: MsgLocationPlayed, data: playResult{name, err}}
}
