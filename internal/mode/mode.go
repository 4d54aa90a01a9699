package mode

// Mode is the controller state: Browsing, AwaitingMove or AwaitingCopy.
// The set of implementations is closed.
type Mode interface {
	Name() string
	isMode()
}

// Browsing is the initial state.
type Browsing struct{}

// AwaitingMove holds a path marked for move until confirm or cancel.
type AwaitingMove struct{ target string }

// AwaitingCopy holds a path marked for copy until confirm or cancel.
type AwaitingCopy struct{ target string }

func (Browsing) Name() string     { return "browse" }
func (AwaitingMove) Name() string { return "move" }
func (AwaitingCopy) Name() string { return "copy" }

func (Browsing) isMode()     {}
func (AwaitingMove) isMode() {}
func (AwaitingCopy) isMode() {}

// Target returns the marked path.
func (m AwaitingMove) Target() string { return m.target }

// Target returns the marked path.
func (m AwaitingCopy) Target() string { return m.target }
