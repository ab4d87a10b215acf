// Package screens holds the concrete inventory screens. Each screen owns
// one state holder from package viewmodel and closes it when popped.
package screens
