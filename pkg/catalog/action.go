package catalog

// Action is what activating an entry does. The set of implementations is
// closed: only types in this package satisfy it, and the executor switches
// over all of them.
type Action interface {
	isAction()
	Kind() string
}

type BuiltinOp int

const (
	OpQuit BuiltinOp = iota
	OpOpenPreferences
	OpSwitchToEmoji
	OpSwitchToClipboard
	OpReload
)

func (op BuiltinOp) String() string {
	switch op {
	case OpQuit:
		return "quit"
	case OpOpenPreferences:
		return "preferences"
	case OpSwitchToEmoji:
		return "emoji"
	case OpSwitchToClipboard:
		return "clipboard"
	case OpReload:
		return "reload"
	}
	return "unknown"
}

// Launch opens an application, desktop file or executable at Path.
type Launch struct {
	Path string
}

// ShellCommand runs Command through sh, with the query text after Alias
// appended as arguments.
type ShellCommand struct {
	Command string
	Alias   string
}

type Builtin struct {
	Op BuiltinOp
}

// DisplayOnly entries only show information; activating them returns focus.
type DisplayOnly struct{}

type OpenWebsite struct {
	URL string
}

type WebSearch struct {
	Query string
}

type CopyText struct {
	Text string
}

func (Launch) isAction()       {}
func (ShellCommand) isAction() {}
func (Builtin) isAction()      {}
func (DisplayOnly) isAction()  {}
func (OpenWebsite) isAction()  {}
func (WebSearch) isAction()    {}
func (CopyText) isAction()     {}

func (Launch) Kind() string       { return "app" }
func (ShellCommand) Kind() string { return "shell" }
func (Builtin) Kind() string      { return "builtin" }
func (DisplayOnly) Kind() string  { return "display" }
func (OpenWebsite) Kind() string  { return "url" }
func (WebSearch) Kind() string    { return "web" }
func (CopyText) Kind() string     { return "copy" }
