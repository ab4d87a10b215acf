package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Actions the inventory screens react to.
const (
	ActionDown        = "down"
	ActionUp          = "up"
	ActionOpen        = "open"
	ActionAdd         = "add"
	ActionFilter      = "filter"
	ActionFilterDone  = "filter-done"
	ActionFilterClear = "filter-clear"
	ActionQuit        = "quit"
	ActionNextField   = "next-field"
	ActionPrevField   = "prev-field"
	ActionSave        = "save"
	ActionEdit        = "edit"
	ActionSell        = "sell"
	ActionDelete      = "delete"
	ActionConfirm     = "confirm"
	ActionCancel      = "cancel"
	ActionBack        = "back"
)

// KeyBinding maps keys to an action within some screen scopes. No scopes, or
// "*", means everywhere.
type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

// KeyRegistry resolves key presses against the bindings of the active
// screen scope. A nil registry matches nothing.
type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

// BindingsForScope returns the bindings active in scope, in registration
// order. The footer renders them as help.
func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	if r == nil {
		return nil
	}
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// KeysFor lists the keys bound to action in scope, for prompts such as the
// delete confirmation.
func (r *KeyRegistry) KeysFor(action, scope string) []string {
	var out []string
	for _, b := range r.BindingsForScope(scope) {
		if b.Action == action {
			out = append(out, b.Keys...)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	return slices.ContainsFunc(r.KeysFor(action, scope), func(k string) bool {
		return normalizeKey(k) == pressed
	})
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	return slices.ContainsFunc(scopes, func(s string) bool { return s == "*" || s == scope })
}
