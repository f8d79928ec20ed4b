package input

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"repopush/internal/ui/input/types"
)

// Values mirrors the form fields held in application state
type Values struct {
	Pat    string
	URL    string
	Branch string
	Commit string // commit input of the selected repository
}

// Handler routes keystrokes to the focused widget and turns command keys
// into actions. It owns the text widgets; their values are mirrored into
// application state through UpdateTextAction and restored with Sync.
type Handler struct {
	focus  types.Focus
	keys   KeyMap
	inputs map[types.Focus]*textinput.Model
}

func New() *Handler {
	pat := textinput.New()
	pat.Prompt = ""
	pat.Placeholder = "個人存取權杖"
	pat.EchoMode = textinput.EchoPassword
	pat.EchoCharacter = '•'

	url := textinput.New()
	url.Prompt = ""
	url.Placeholder = "https://dev.azure.com/org/project/_git/repo"

	branch := textinput.New()
	branch.Prompt = ""
	branch.Placeholder = "分支（選填）"

	commit := textinput.New()
	commit.Prompt = ""
	commit.Placeholder = "Commit 訊息"

	h := &Handler{
		focus: types.FocusPat,
		keys:  DefaultKeyMap(),
		inputs: map[types.Focus]*textinput.Model{
			types.FocusPat:        &pat,
			types.FocusRepoURL:    &url,
			types.FocusRepoBranch: &branch,
			types.FocusRepos:      &commit,
		},
	}
	h.inputs[h.focus].Focus()
	return h
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}

// Keys returns the active key bindings
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// CurrentFocus returns the focused widget
func (h *Handler) CurrentFocus() types.Focus {
	return h.focus
}

// HandleKey processes a key and returns the resulting actions
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	if ctx.HelpVisible() {
		switch {
		case key.Matches(msg, h.keys.Quit):
			return []types.Action{types.QuitAction{Force: true}}, nil
		case key.Matches(msg, h.keys.Help), key.Matches(msg, h.keys.Cancel):
			return []types.Action{types.ToggleHelpAction{}}, nil
		}
		return nil, nil
	}

	switch {
	case key.Matches(msg, h.keys.Quit):
		return []types.Action{types.QuitAction{Force: true}}, nil
	case key.Matches(msg, h.keys.Cancel):
		return []types.Action{types.QuitAction{}}, nil
	case key.Matches(msg, h.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, nil
	case key.Matches(msg, h.keys.Refresh):
		return []types.Action{types.RefreshAction{}}, nil
	case key.Matches(msg, h.keys.Next):
		return h.changeFocus(h.focus.Next())
	case key.Matches(msg, h.keys.Prev):
		return h.changeFocus(h.focus.Prev())
	case key.Matches(msg, h.keys.Submit):
		return h.submit(ctx), nil
	}

	if h.focus == types.FocusRepos {
		switch {
		case key.Matches(msg, h.keys.Up):
			return []types.Action{types.NavigateAction{Direction: "up"}}, nil
		case key.Matches(msg, h.keys.Down):
			return []types.Action{types.NavigateAction{Direction: "down"}}, nil
		case key.Matches(msg, h.keys.Home):
			return []types.Action{types.NavigateAction{Direction: "home"}}, nil
		case key.Matches(msg, h.keys.End):
			return []types.Action{types.NavigateAction{Direction: "end"}}, nil
		}
		if ctx.CurrentRepoID() == "" {
			return nil, nil
		}
	}

	return h.edit(msg, ctx)
}

// Update forwards non-keyboard messages, such as cursor blinks, to the focused widget
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*h.inputs[h.focus], cmd = h.inputs[h.focus].Update(msg)
	return cmd
}

// Sync copies state values into the widgets that differ, so resets made by
// completed operations show up without disturbing the cursor otherwise
func (h *Handler) Sync(values Values) {
	sync := func(f types.Focus, value string) {
		if h.inputs[f].Value() != value {
			h.inputs[f].SetValue(value)
		}
	}
	sync(types.FocusPat, values.Pat)
	sync(types.FocusRepoURL, values.URL)
	sync(types.FocusRepoBranch, values.Branch)
	sync(types.FocusRepos, values.Commit)
}

// View renders the widget for f
func (h *Handler) View(f types.Focus) string {
	return h.inputs[f].View()
}

// Reset returns focus to the PAT field
func (h *Handler) Reset() {
	h.changeFocus(types.FocusPat)
}

func (h *Handler) changeFocus(f types.Focus) ([]types.Action, tea.Cmd) {
	h.inputs[h.focus].Blur()
	h.focus = f
	cmd := h.inputs[h.focus].Focus()
	return []types.Action{types.ChangeFocusAction{Focus: f}}, cmd
}

func (h *Handler) submit(ctx types.Context) []types.Action {
	if h.focus == types.FocusRepos {
		id := ctx.CurrentRepoID()
		if id == "" {
			return nil
		}
		return []types.Action{types.SubmitAction{Focus: types.FocusRepos, RepoID: id}}
	}
	// URL and branch belong to the same form
	f := h.focus
	if f == types.FocusRepoBranch {
		f = types.FocusRepoURL
	}
	return []types.Action{types.SubmitAction{Focus: f}}
}

func (h *Handler) edit(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	input := h.inputs[h.focus]
	action := types.UpdateTextAction{Focus: h.focus}
	if h.focus == types.FocusRepos {
		action.RepoID = ctx.CurrentRepoID()
		if current := ctx.CommitMessage(action.RepoID); input.Value() != current {
			input.SetValue(current)
		}
	}

	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if input.Value() == before {
		return nil, cmd
	}
	action.Text = input.Value()
	return []types.Action{action}, cmd
}
