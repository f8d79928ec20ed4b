package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Focus transition actions
type ChangeFocusAction struct {
	Focus Focus
}

func (a ChangeFocusAction) Type() string { return "change_focus" }

// Text input actions
type UpdateTextAction struct {
	Focus  Focus
	RepoID string // set when Focus is FocusRepos
	Text   string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// SubmitAction submits the form under Focus
type SubmitAction struct {
	Focus  Focus
	RepoID string // set when Focus is FocusRepos
}

func (a SubmitAction) Type() string { return "submit" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for Esc
}

func (a QuitAction) Type() string { return "quit" }
