// Package tui contains the app-wide terminal model: the screen stack, message
// contracts, key registry and the shared bars drawn around the active screen.
//
// Concrete screens live in tui/screens.
package tui
