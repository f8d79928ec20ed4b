package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"repopush/internal/config"
	"repopush/internal/ui/coordinator"
	"repopush/internal/ui/input"
	inputtypes "repopush/internal/ui/input/types"
	"repopush/internal/ui/state"
	"repopush/internal/ui/viewmodels"
	"repopush/internal/ui/views"
)

// Lines taken by everything except the repository list
const chromeLines = 20

// Model represents the UI state
type Model struct {
	coord  *coordinator.Coordinator
	config *config.Config
	logger *zap.Logger

	// UI-specific state not in AppState
	width     int
	height    int
	selection viewmodels.Selection
	spinner   spinner.Model
	quitArmed bool

	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
}

// NewModel creates a new UI model
func NewModel(coord *coordinator.Coordinator, cfg *config.Config, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		coord:        coord,
		config:       cfg,
		logger:       logger.Named("ui"),
		selection:    viewmodels.Selection{ViewportHeight: 10},
		spinner:      sp,
		renderer:     views.NewRenderer(cfg.UI.ShowPaths),
		viewModel:    viewmodels.NewViewModel(),
		inputHandler: input.New(),
	}
}

// Init loads the PAT status and repository list
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.coord.Init(), m.inputHandler.Init(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		snap := m.coord.Snapshot()
		actions, cmd := m.inputHandler.HandleKey(msg, &modelContext{m: m, snap: snap})

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		m.syncInputs()
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.viewModel.SetSpinner(m.spinner.View())
		return m, cmd

	case EventMsg:
		if line := describeEvent(msg.Event); line != "" {
			m.viewModel.SetActivity(line)
		}
		return m, nil
	}

	if m.coord.Update(msg) {
		m.clampSelection()
		m.syncInputs()
		return m, nil
	}
	return m, m.inputHandler.Update(msg)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	vs := m.viewModel.BuildViewState(m.coord.Snapshot(), m.inputHandler, m.selection)
	return m.renderer.Render(vs)
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	if _, ok := action.(inputtypes.QuitAction); !ok {
		m.quitArmed = false
	}

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.ChangeFocusAction:
		m.logger.Debug("focus changed", zap.Stringer("focus", a.Focus))

	case inputtypes.UpdateTextAction:
		switch a.Focus {
		case inputtypes.FocusPat:
			m.coord.SetPat(a.Text)
		case inputtypes.FocusRepoURL:
			m.coord.SetRepoURL(a.Text)
		case inputtypes.FocusRepoBranch:
			m.coord.SetRepoBranch(a.Text)
		case inputtypes.FocusRepos:
			m.coord.SetCommitMessage(a.RepoID, a.Text)
		}

	case inputtypes.SubmitAction:
		switch a.Focus {
		case inputtypes.FocusPat:
			return m.coord.SavePat()
		case inputtypes.FocusRepoURL:
			return m.coord.AddRepo()
		case inputtypes.FocusRepos:
			return m.coord.CommitAndPush(a.RepoID)
		}

	case inputtypes.RefreshAction:
		return m.coord.Refresh()

	case inputtypes.ToggleHelpAction:
		m.viewModel.ToggleHelp()

	case inputtypes.QuitAction:
		// Leaving with a request in flight abandons its result; ask twice
		if a.Force || m.quitArmed || !busy(m.coord.Snapshot()) {
			m.logger.Info("quitting", zap.Bool("force", a.Force))
			return tea.Quit
		}
		m.quitArmed = true
		m.viewModel.SetActivity("操作進行中，再按一次 esc 離開")
	}
	return nil
}

func busy(snap state.Snapshot) bool {
	return snap.PatLoading || snap.RepoListLoading || snap.AddRepoLoading || snap.CommitLoading != ""
}

func (m *Model) navigate(direction string) {
	total := len(m.coord.Snapshot().Repos)
	switch direction {
	case "up":
		if m.selection.Index > 0 {
			m.selection.Index--
		}
	case "down":
		if m.selection.Index < total-1 {
			m.selection.Index++
		}
	case "home":
		m.selection.Index = 0
	case "end":
		m.selection.Index = total - 1
	}
	m.clampSelection()
}

// clampSelection keeps the cursor on an existing entry and inside the viewport
func (m *Model) clampSelection() {
	total := len(m.coord.Snapshot().Repos)
	if m.selection.Index >= total {
		m.selection.Index = total - 1
	}
	if m.selection.Index < 0 {
		m.selection.Index = 0
	}

	h := m.selection.ViewportHeight
	if h <= 0 {
		return
	}
	if m.selection.Index < m.selection.ViewportOffset {
		m.selection.ViewportOffset = m.selection.Index
	}
	if m.selection.Index >= m.selection.ViewportOffset+h {
		m.selection.ViewportOffset = m.selection.Index - h + 1
	}
	if limit := total - h; m.selection.ViewportOffset > limit {
		m.selection.ViewportOffset = limit
	}
	if m.selection.ViewportOffset < 0 {
		m.selection.ViewportOffset = 0
	}
}

func (m *Model) updateViewportHeight() {
	linesPerRepo := 1
	if m.config.UI.ShowPaths {
		linesPerRepo = 2
	}
	h := (m.height - chromeLines) / linesPerRepo
	if h < 3 {
		h = 3
	}
	m.selection.ViewportHeight = h
	m.clampSelection()
}

// selectedRepoID returns the id under the cursor, or "" when the list is empty
func (m *Model) selectedRepoID(snap state.Snapshot) string {
	if m.selection.Index < 0 || m.selection.Index >= len(snap.Repos) {
		return ""
	}
	return snap.Repos[m.selection.Index].ID
}

// syncInputs mirrors state back into the widgets after operations reset fields
func (m *Model) syncInputs() {
	snap := m.coord.Snapshot()
	values := input.Values{
		Pat:    snap.PatForm.Pat.Value,
		URL:    snap.RepoForm.URL.Value,
		Branch: snap.RepoForm.Branch.Value,
	}
	if id := m.selectedRepoID(snap); id != "" {
		values.Commit = snap.CommitInputs[id].Value
	}
	m.inputHandler.Sync(values)
}

// modelContext implements the input Context over one state snapshot
type modelContext struct {
	m    *Model
	snap state.Snapshot
}

func (c *modelContext) CurrentIndex() int {
	return c.m.selection.Index
}

func (c *modelContext) TotalItems() int {
	return len(c.snap.Repos)
}

func (c *modelContext) CurrentRepoID() string {
	return c.m.selectedRepoID(c.snap)
}

func (c *modelContext) CommitMessage(repoID string) string {
	return c.snap.CommitInputs[repoID].Value
}

func (c *modelContext) HelpVisible() bool {
	return c.m.viewModel.HelpVisible()
}
