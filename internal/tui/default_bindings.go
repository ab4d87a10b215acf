package tui

// Screen scopes used by the default bindings.
const (
	ScopeHome       = "screen:home"
	ScopeHomeFilter = "screen:home:filter"
	ScopeForm       = "screen:form"
	ScopeDetails    = "screen:details"
	ScopeConfirm    = "screen:details:confirm"
)

// DefaultKeyBindings is the inventory keymap.
func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"j", "down"}, Action: ActionDown, Description: "down", Scopes: []string{ScopeHome}},
		{Keys: []string{"k", "up"}, Action: ActionUp, Description: "up", Scopes: []string{ScopeHome}},
		{Keys: []string{"enter"}, Action: ActionOpen, Description: "details", Scopes: []string{ScopeHome}},
		{Keys: []string{"a"}, Action: ActionAdd, Description: "add item", Scopes: []string{ScopeHome}},
		{Keys: []string{"/"}, Action: ActionFilter, Description: "filter", Scopes: []string{ScopeHome}},
		{Keys: []string{"q"}, Action: ActionQuit, Description: "quit", Scopes: []string{ScopeHome}},
		{Keys: []string{"enter"}, Action: ActionFilterDone, Description: "keep filter", Scopes: []string{ScopeHomeFilter}},
		{Keys: []string{"esc"}, Action: ActionFilterClear, Description: "clear filter", Scopes: []string{ScopeHomeFilter}},
		{Keys: []string{"tab"}, Action: ActionNextField, Description: "next field", Scopes: []string{ScopeForm}},
		{Keys: []string{"shift+tab"}, Action: ActionPrevField, Description: "prev field", Scopes: []string{ScopeForm}},
		{Keys: []string{"enter"}, Action: ActionSave, Description: "save", Scopes: []string{ScopeForm}},
		{Keys: []string{"e"}, Action: ActionEdit, Description: "edit", Scopes: []string{ScopeDetails}},
		{Keys: []string{"s"}, Action: ActionSell, Description: "sell one", Scopes: []string{ScopeDetails}},
		{Keys: []string{"d"}, Action: ActionDelete, Description: "delete", Scopes: []string{ScopeDetails}},
		{Keys: []string{"y"}, Action: ActionConfirm, Description: "yes, delete", Scopes: []string{ScopeConfirm}},
		{Keys: []string{"n", "esc"}, Action: ActionCancel, Description: "keep", Scopes: []string{ScopeConfirm}},
		{Keys: []string{"esc"}, Action: ActionBack, Description: "back", Scopes: []string{ScopeForm, ScopeDetails}},
	}
}
