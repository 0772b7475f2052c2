// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for station browsing:
//  1. [StationListView] : Browse discovered radio stations with validation badges
//  2. [ValidatingView] : Watch a stream validation in flight
//  3. [ResultView] : Inspect the validation verdict and recommendations
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Validation runs through the station engine off the UI goroutine, reporting back as a single completion message.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, o, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
