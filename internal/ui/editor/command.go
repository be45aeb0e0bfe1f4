package editor

// ExecuteResult indicates the outcome of command execution.
type ExecuteResult int

const (
	// Executed means the command ran and consumed the key.
	Executed ExecuteResult = iota
	// PassThrough means the command chose not to handle this key (let parent handle it).
	PassThrough
	// Skipped means pre-conditions weren't met (e.g., backspace at position 0,0,
	// or an editing key while the widget is read-only).
	Skipped
)

// Command represents an executable editor operation bound to one or
// more keys. Editing commands respect the widget's editable flag by
// returning Skipped; motion commands run regardless.
type Command interface {
	// Execute applies the command to the model.
	Execute(m *Model) ExecuteResult

	// Keys returns the trigger key(s) that invoke this command.
	// Special keys use angle brackets: "<enter>", "<backspace>", "<ctrl+c>".
	// Aliases share one command: []string{"<home>", "<ctrl+a>"}.
	Keys() []string

	// ID returns a hierarchical identifier for this command type,
	// used for logging and registry organization.
	// Examples: "insert.text", "move.left", "clipboard.copy"
	ID() string

	// ChangesContent reports whether this command can modify text.
	// Content-mutating commands require the editable flag and trigger
	// the change notification; motion commands do neither.
	ChangesContent() bool
}

// MotionBase provides defaults for cursor-movement commands.
type MotionBase struct{}

func (MotionBase) ChangesContent() bool { return false }

// EditBase provides defaults for content-mutating commands.
type EditBase struct{}

func (EditBase) ChangesContent() bool { return true }

// CommandRegistry provides key-based command dispatch. Commands are
// registered under each of their trigger keys.
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]Command),
	}
}

// Register adds a command under all of its Keys().
func (r *CommandRegistry) Register(cmd Command) {
	for _, key := range cmd.Keys() {
		r.commands[key] = cmd
	}
}

// Get retrieves the command bound to a key.
func (r *CommandRegistry) Get(key string) (Command, bool) {
	cmd, ok := r.commands[key]
	return cmd, ok
}

// DefaultRegistry is the global command registry with all built-in commands registered.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()

	// Motion commands
	r.Register(&MoveLeftCommand{})
	r.Register(&MoveRightCommand{})
	r.Register(&MoveUpCommand{})
	r.Register(&MoveDownCommand{})
	r.Register(&MoveToLineStartCommand{})
	r.Register(&MoveToLineEndCommand{})

	// Editing commands
	r.Register(&NewlineCommand{})
	r.Register(&TabCommand{})
	r.Register(&SpaceCommand{})
	r.Register(&BackspaceCommand{})
	r.Register(&DeleteKeyCommand{})
	r.Register(&KillToLineEndCommand{})
	r.Register(&KillToLineStartCommand{})

	// Clipboard
	r.Register(&CopyCommand{})

	return r
}

// isWhitespace returns true if the rune is a space or tab.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t'
}
