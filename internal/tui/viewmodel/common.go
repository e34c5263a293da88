// Package viewmodel derives display data from session state. Everything here is
// a pure function of its inputs so views can be tested without a terminal.
package viewmodel

import "fmt"

// Screen identifies the active top-level screen.
type Screen int

const (
	// ScreenSelect shows the search bar, the selection and suggestions.
	ScreenSelect Screen = iota
	// ScreenResults shows the package comparison for the selection.
	ScreenResults
)

// String returns a string representation of the screen.
func (s Screen) String() string {
	switch s {
	case ScreenSelect:
		return "Select"
	case ScreenResults:
		return "Results"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// KeyBinding represents a keyboard shortcut.
type KeyBinding struct {
	Key         string
	Description string
	IsActive    bool
}

// Dimensions represents size constraints.
type Dimensions struct {
	Width  int
	Height int
}

// ActiveKeyBindings returns only the currently active key bindings.
func ActiveKeyBindings(bindings []KeyBinding) []KeyBinding {
	var active []KeyBinding
	for _, kb := range bindings {
		if kb.IsActive {
			active = append(active, kb)
		}
	}
	return active
}
