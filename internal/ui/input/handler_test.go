package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repopush/internal/ui/input/types"
)

type fakeContext struct {
	index    int
	ids      []string
	messages map[string]string
	help     bool
}

func (c *fakeContext) CurrentIndex() int { return c.index }
func (c *fakeContext) TotalItems() int   { return len(c.ids) }
func (c *fakeContext) HelpVisible() bool { return c.help }

func (c *fakeContext) CurrentRepoID() string {
	if c.index < 0 || c.index >= len(c.ids) {
		return ""
	}
	return c.ids[c.index]
}

func (c *fakeContext) CommitMessage(id string) string {
	return c.messages[id]
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingUpdatesFocusedField(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	actions, _ := h.HandleKey(runes("a"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Focus: types.FocusPat, Text: "a"}, actions[0])

	actions, _ = h.HandleKey(runes("b"), ctx)
	assert.Equal(t, types.UpdateTextAction{Focus: types.FocusPat, Text: "ab"}, actions[0])
}

func TestPatFieldIsMasked(t *testing.T) {
	h := New()
	h.HandleKey(runes("secret"), &fakeContext{})
	assert.NotContains(t, h.View(types.FocusPat), "secret")
}

func TestFocusRing(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	expected := []types.Focus{types.FocusRepoURL, types.FocusRepoBranch, types.FocusRepos, types.FocusPat}
	for _, want := range expected {
		actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
		require.Len(t, actions, 1)
		assert.Equal(t, types.ChangeFocusAction{Focus: want}, actions[0])
		assert.Equal(t, want, h.CurrentFocus())
	}

	h.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab}, ctx)
	assert.Equal(t, types.FocusRepos, h.CurrentFocus())
}

func TestSubmitTargetsForm(t *testing.T) {
	h := New()
	ctx := &fakeContext{ids: []string{"1", "2"}, index: 1}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitAction{Focus: types.FocusPat}}, actions)

	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitAction{Focus: types.FocusRepoURL}}, actions, "branch submits the repository form")

	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitAction{Focus: types.FocusRepos, RepoID: "2"}}, actions)
}

func TestRepoListWithoutSelectionIgnoresInput(t *testing.T) {
	h := New()
	ctx := &fakeContext{}
	for i := 0; i < 3; i++ {
		h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	}
	require.Equal(t, types.FocusRepos, h.CurrentFocus())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Empty(t, actions)
	actions, _ = h.HandleKey(runes("x"), ctx)
	assert.Empty(t, actions)
}

func TestCommitEditingFollowsSelection(t *testing.T) {
	h := New()
	ctx := &fakeContext{ids: []string{"1", "2"}, messages: map[string]string{"2": "wip"}}
	for i := 0; i < 3; i++ {
		h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	}

	actions, _ := h.HandleKey(runes("a"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Focus: types.FocusRepos, RepoID: "1", Text: "a"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	ctx.index = 1
	actions, _ = h.HandleKey(runes("!"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Focus: types.FocusRepos, RepoID: "2", Text: "wip!"}}, actions)
}

func TestCommandKeys(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlR}, ctx)
	assert.Equal(t, []types.Action{types.RefreshAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyF1}, ctx)
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.QuitAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)
}

func TestHelpOverlaySwallowsKeys(t *testing.T) {
	h := New()
	ctx := &fakeContext{help: true}

	actions, _ := h.HandleKey(runes("a"), ctx)
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)
}

func TestSyncRestoresStateValues(t *testing.T) {
	h := New()
	ctx := &fakeContext{}
	h.HandleKey(runes("token"), ctx)

	h.Sync(Values{Pat: "", URL: "https://x/p/_git/r"})
	actions, _ := h.HandleKey(runes("z"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Focus: types.FocusPat, Text: "z"}}, actions)

	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Contains(t, h.View(types.FocusRepoURL), "https://x/p/_git/r")
}
