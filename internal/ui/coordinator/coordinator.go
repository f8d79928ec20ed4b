package coordinator

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"repopush/internal/api"
	"repopush/internal/eventbus"
	"repopush/internal/ui/commands"
	"repopush/internal/ui/handlers"
	"repopush/internal/ui/state"
)

// Coordinator is the workflow orchestrator. It owns the application state,
// turns user intents into backend calls and reconciles the results.
//
// All methods except Snapshot-returned values must be called from a single
// goroutine (the bubbletea update loop, or the CLI's main goroutine). The
// tea.Cmd values it returns may run anywhere.
type Coordinator struct {
	state    *state.AppState
	executor *commands.Executor
	handler  *handlers.EventHandler
	bus      eventbus.EventBus
	logger   *zap.Logger
}

// New creates a coordinator. ctx bounds every backend call; bus may be nil.
func New(ctx context.Context, svc api.Service, bus eventbus.EventBus, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("coordinator")

	appState := state.NewAppState()
	return &Coordinator{
		state:    appState,
		executor: commands.NewExecutor(ctx, appState, svc, bus, logger),
		handler:  handlers.NewEventHandler(appState, bus, logger),
		bus:      bus,
		logger:   logger,
	}
}

// Init starts the PAT status and repository list loads concurrently
func (c *Coordinator) Init() tea.Cmd {
	return c.Refresh()
}

// Refresh re-issues both loads; each updates only its own slice
func (c *Coordinator) Refresh() tea.Cmd {
	return c.changed(tea.Batch(
		c.executor.ExecuteLoadPat(),
		c.executor.ExecuteLoadRepos(),
	))
}

// LoadPat re-reads only the PAT status
func (c *Coordinator) LoadPat() tea.Cmd {
	return c.changed(c.executor.ExecuteLoadPat())
}

// LoadRepos re-reads only the repository list
func (c *Coordinator) LoadRepos() tea.Cmd {
	return c.changed(c.executor.ExecuteLoadRepos())
}

// SavePat submits the PAT form
func (c *Coordinator) SavePat() tea.Cmd {
	return c.changed(c.executor.ExecuteSavePat())
}

// AddRepo submits the add-repository form
func (c *Coordinator) AddRepo() tea.Cmd {
	return c.changed(c.executor.ExecuteAddRepo())
}

// CommitAndPush submits the commit input of a listed repository
func (c *Coordinator) CommitAndPush(repoID string) tea.Cmd {
	return c.changed(c.executor.ExecuteCommit(repoID))
}

// SetPat updates the PAT field
func (c *Coordinator) SetPat(value string) {
	c.state.PatForm.Pat.Set(value)
}

// SetRepoURL updates the repository URL field
func (c *Coordinator) SetRepoURL(value string) {
	c.state.RepoForm.URL.Set(value)
}

// SetRepoBranch updates the branch field
func (c *Coordinator) SetRepoBranch(value string) {
	c.state.RepoForm.Branch.Set(value)
}

// SetCommitMessage updates the commit input of a listed repository.
// It returns false when no such repository is listed.
func (c *Coordinator) SetCommitMessage(repoID, value string) bool {
	if !c.state.HasRepo(repoID) {
		return false
	}
	c.state.CommitInput(repoID).Set(value)
	return true
}

// Update applies an operation result. It reports whether msg was one.
func (c *Coordinator) Update(msg tea.Msg) bool {
	if !c.handler.Handle(msg) {
		return false
	}
	c.changed(nil)
	return true
}

// Run executes cmd and everything it batches synchronously, applying each
// result before returning. Used by the headless commands and tests.
func (c *Coordinator) Run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			c.Run(sub)
		}
	default:
		c.Update(msg)
	}
}

// Snapshot returns a copy of the current state
func (c *Coordinator) Snapshot() state.Snapshot {
	return c.state.Snapshot()
}

// Subscribe registers fn to be called with the revision after every state
// change. fn runs on the event bus goroutine. Returns an unsubscribe func.
func (c *Coordinator) Subscribe(fn func(revision uint64)) func() {
	if c.bus == nil {
		return func() {}
	}
	return c.bus.Subscribe(eventbus.EventStateChanged, func(e eventbus.DomainEvent) {
		if changed, ok := e.(eventbus.StateChangedEvent); ok {
			fn(changed.Revision)
		}
	})
}

// changed bumps the revision and notifies subscribers, passing cmd through
func (c *Coordinator) changed(cmd tea.Cmd) tea.Cmd {
	revision := c.state.Touch()
	if c.bus != nil {
		c.bus.Publish(eventbus.StateChangedEvent{Revision: revision})
	}
	return cmd
}
