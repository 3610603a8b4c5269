package editor

import "fmt"

// CommandKind enumerates the editing commands.
type CommandKind int

const (
	CmdOpen CommandKind = iota
	CmdSave
	CmdRemove
	CmdMoveUp
	CmdMoveDown
	CmdMoveTo
	CmdAutoSelect
)

func (k CommandKind) String() string {
	switch k {
	case CmdOpen:
		return "open"
	case CmdSave:
		return "save"
	case CmdRemove:
		return "remove"
	case CmdMoveUp:
		return "move_up"
	case CmdMoveDown:
		return "move_down"
	case CmdMoveTo:
		return "move_to"
	case CmdAutoSelect:
		return "auto_select"
	default:
		return fmt.Sprintf("command(%d)", int(k))
	}
}

// Command is one user gesture (Elm-style message). Only the fields relevant to
// Kind are set; use the constructors.
type Command struct {
	Kind      CommandKind
	Path      string
	Indices   []int
	Index     int
	From      int
	To        int
	Substring string
}

// Open is the constructor for [CmdOpen].
func Open(path string) Command {
	return Command{Kind: CmdOpen, Path: path}
}

// Save is the constructor for [CmdSave]. An empty path saves over the document's own path.
func Save(path string) Command {
	return Command{Kind: CmdSave, Path: path}
}

// Remove is the constructor for [CmdRemove].
func Remove(indices ...int) Command {
	return Command{Kind: CmdRemove, Indices: indices}
}

// MoveUpAt is the constructor for [CmdMoveUp].
func MoveUpAt(index int) Command {
	return Command{Kind: CmdMoveUp, Index: index}
}

// MoveDownAt is the constructor for [CmdMoveDown].
func MoveDownAt(index int) Command {
	return Command{Kind: CmdMoveDown, Index: index}
}

// Move is the constructor for [CmdMoveTo].
func Move(from, to int) Command {
	return Command{Kind: CmdMoveTo, From: from, To: to}
}

// AutoSelect is the constructor for [CmdAutoSelect]: select every entry whose
// display name lacks substring.
func AutoSelect(substring string) Command {
	return Command{Kind: CmdAutoSelect, Substring: substring}
}
