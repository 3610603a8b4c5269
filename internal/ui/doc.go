// Package ui implements an interactive terminal playlist editor using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [EditView] : Browse channels, toggle selection, auto-select, remove, play
//  2. [SortView] : Reorder a working copy with move up/down or grab-and-drop, then apply or discard it
//  3. [PromptView] : Enter a path to open or save
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern. Every edit is an
// [editor.Command] applied through [editor.Session.Update]; file access runs as a [tea.Cmd] and its result
// comes back through the Msg union type.
//
// Keyboard navigation uses vim-style bindings (j/k, J/K, space, enter, esc, q) with contextual help displayed
// via charmbracelet/bubbles/help.
package ui
