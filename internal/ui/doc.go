// Package ui provides the terminal user interface for the parasvg editor.
//
// # Architecture Overview
//
// The UI is a bubbletea program. All remote work (login code exchange,
// gist saves, gist downloads, serialization) runs inside tea.Cmd closures
// and reports back through typed completion messages, so every state
// transition is applied inside Update, one message at a time, in arrival
// order.
//
// # Package Structure
//
//   - ui.go: The Model, key handling, prompts, and the main Run function
//   - commands.go: tea.Cmd constructors and their completion messages
//   - viewmodel.go: The derived sync-control decision shown in the header
//   - keys.go: Key bindings
//   - theme.go: Color palettes and lipgloss styles
//
// # Layout
//
// A header line carries the app name, the sync control, and the current
// file name. Below it sit two panes, the markup editor and the variable
// list, switched with tab. Failure toasts render above a footer that shows
// either the active prompt or the key help for the focused pane.
package ui
