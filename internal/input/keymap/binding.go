package keymap

// Action names understood by the dispatcher.
const (
	ActionDigit    = "calc.digit"
	ActionOperator = "calc.operator"
	ActionEquals   = "calc.equals"
	ActionDelete   = "calc.delete"
	ActionClear    = "calc.clear"
	ActionQuit     = "app.quit"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key specification that triggers this binding.
	// Formats: "7", "+", "Enter", "<C-c>", "Ctrl+C"
	Keys string

	// Action is the action to execute (e.g. "calc.operator").
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// StringArg returns the named argument if it is a non-empty string.
func (b Binding) StringArg(name string) (string, bool) {
	s, ok := b.Args[name].(string)
	return s, ok && s != ""
}
