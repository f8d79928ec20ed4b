package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"repopush/internal/api"
	"repopush/internal/eventbus"
	"repopush/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, appState *state.AppState, svc api.Service, bus eventbus.EventBus, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		ctx: &CommandContext{
			Ctx:     ctx,
			State:   appState,
			Service: svc,
			Bus:     bus,
			Logger:  logger,
		},
	}
}

// ExecuteLoadPat creates and executes a PAT status load
func (e *Executor) ExecuteLoadPat() tea.Cmd {
	return NewLoadPatCommand(e.ctx).Execute()
}

// ExecuteLoadRepos creates and executes a repository list load
func (e *Executor) ExecuteLoadRepos() tea.Cmd {
	return NewLoadReposCommand(e.ctx).Execute()
}

// ExecuteSavePat creates and executes a PAT save
func (e *Executor) ExecuteSavePat() tea.Cmd {
	return NewSavePatCommand(e.ctx).Execute()
}

// ExecuteAddRepo creates and executes a repository registration
func (e *Executor) ExecuteAddRepo() tea.Cmd {
	return NewAddRepoCommand(e.ctx).Execute()
}

// ExecuteCommit creates and executes a commit-and-push for one repository
func (e *Executor) ExecuteCommit(repoID string) tea.Cmd {
	return NewCommitCommand(e.ctx, repoID).Execute()
}
