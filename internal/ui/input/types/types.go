package types

import tea "github.com/charmbracelet/bubbletea"

// Focus identifies the widget receiving keystrokes
type Focus int

const (
	FocusPat Focus = iota
	FocusRepoURL
	FocusRepoBranch
	FocusRepos
)

// focusCount is the length of the focus ring
const focusCount = 4

// Next returns the focus after f, wrapping around
func (f Focus) Next() Focus {
	return (f + 1) % focusCount
}

// Prev returns the focus before f, wrapping around
func (f Focus) Prev() Focus {
	return (f + focusCount - 1) % focusCount
}

// String returns the focus name for display
func (f Focus) String() string {
	switch f {
	case FocusPat:
		return "pat"
	case FocusRepoURL:
		return "url"
	case FocusRepoBranch:
		return "branch"
	case FocusRepos:
		return "repos"
	default:
		return "unknown"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentIndex() int
	TotalItems() int
	CurrentRepoID() string
	CommitMessage(repoID string) string
	HelpVisible() bool
}

// KeyHandler handles input for a specific focus
type KeyHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)
}
