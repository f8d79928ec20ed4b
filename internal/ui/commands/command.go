package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"repopush/internal/api"
	"repopush/internal/domain"
	"repopush/internal/eventbus"
	"repopush/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution.
// Execute runs on the update goroutine and may touch State; the returned
// tea.Cmd runs elsewhere and must only use values captured up front.
type CommandContext struct {
	Ctx     context.Context
	State   *state.AppState
	Service api.Service
	Bus     eventbus.EventBus
	Logger  *zap.Logger
}

func (c *CommandContext) started(op domain.Operation, repoID string) {
	c.Logger.Info("operation started", zap.String("operation", string(op)), zap.String("repo_id", repoID))
	if c.Bus != nil {
		c.Bus.Publish(eventbus.OperationStartedEvent{Operation: op, RepoID: repoID})
	}
}

func (c *CommandContext) skipped(op domain.Operation, reason string) {
	c.Logger.Debug("operation not started", zap.String("operation", string(op)), zap.String("reason", reason))
}

// LoadPatCommand reads the PAT status
type LoadPatCommand struct {
	ctx *CommandContext
}

// NewLoadPatCommand creates a new PAT status load command
func NewLoadPatCommand(ctx *CommandContext) *LoadPatCommand {
	return &LoadPatCommand{ctx: ctx}
}

// Execute starts the load unless a PAT operation is already pending
func (c *LoadPatCommand) Execute() tea.Cmd {
	if c.ctx.State.PatLoading {
		c.ctx.skipped(domain.OpLoadPat, "pat operation pending")
		return nil
	}
	c.ctx.State.PatLoading = true
	c.ctx.started(domain.OpLoadPat, "")

	ctx, svc := c.ctx.Ctx, c.ctx.Service
	return func() tea.Msg {
		status, err := svc.GetPatStatus(ctx)
		return PatLoadedMsg{Status: status, Err: err}
	}
}

// LoadReposCommand reads the repository list
type LoadReposCommand struct {
	ctx *CommandContext
}

// NewLoadReposCommand creates a new repository list load command
func NewLoadReposCommand(ctx *CommandContext) *LoadReposCommand {
	return &LoadReposCommand{ctx: ctx}
}

// Execute starts the load unless one is already pending
func (c *LoadReposCommand) Execute() tea.Cmd {
	if c.ctx.State.RepoListLoading {
		c.ctx.skipped(domain.OpLoadRepos, "list load pending")
		return nil
	}
	c.ctx.State.RepoListLoading = true
	c.ctx.started(domain.OpLoadRepos, "")

	ctx, svc := c.ctx.Ctx, c.ctx.Service
	return func() tea.Msg {
		repos, err := svc.ListRepos(ctx)
		return ReposLoadedMsg{Repos: repos, Err: err}
	}
}

// SavePatCommand submits the PAT form
type SavePatCommand struct {
	ctx *CommandContext
}

// NewSavePatCommand creates a new PAT save command
func NewSavePatCommand(ctx *CommandContext) *SavePatCommand {
	return &SavePatCommand{ctx: ctx}
}

// Execute validates the form and submits the trimmed token
func (c *SavePatCommand) Execute() tea.Cmd {
	s := c.ctx.State
	if s.PatLoading {
		c.ctx.skipped(domain.OpSavePat, "pat operation pending")
		return nil
	}
	if !s.PatForm.Validate() {
		c.ctx.skipped(domain.OpSavePat, "form invalid")
		return nil
	}

	pat := s.PatForm.Pat.Trimmed()
	s.ClearMessages()
	s.PatLoading = true
	c.ctx.started(domain.OpSavePat, "")

	ctx, svc := c.ctx.Ctx, c.ctx.Service
	return func() tea.Msg {
		status, err := svc.UpdatePat(ctx, pat)
		return PatSavedMsg{Status: status, Err: err}
	}
}

// AddRepoCommand submits the add-repository form
type AddRepoCommand struct {
	ctx *CommandContext
}

// NewAddRepoCommand creates a new add repository command
func NewAddRepoCommand(ctx *CommandContext) *AddRepoCommand {
	return &AddRepoCommand{ctx: ctx}
}

// Execute validates the form and registers the repository
func (c *AddRepoCommand) Execute() tea.Cmd {
	s := c.ctx.State
	if s.AddRepoLoading {
		c.ctx.skipped(domain.OpAddRepo, "add pending")
		return nil
	}
	if !s.RepoForm.Validate() {
		c.ctx.skipped(domain.OpAddRepo, "form invalid")
		return nil
	}

	req := domain.CreateRepoRequest{
		URL:    s.RepoForm.URL.Trimmed(),
		Branch: s.RepoForm.BranchOrEmpty(),
	}
	s.ClearMessages()
	s.AddRepoLoading = true
	c.ctx.started(domain.OpAddRepo, "")

	ctx, svc := c.ctx.Ctx, c.ctx.Service
	return func() tea.Msg {
		repo, err := svc.AddRepo(ctx, req)
		return RepoAddedMsg{Repo: repo, Err: err}
	}
}

// CommitCommand commits and pushes one repository
type CommitCommand struct {
	ctx    *CommandContext
	repoID string
}

// NewCommitCommand creates a new commit-and-push command
func NewCommitCommand(ctx *CommandContext, repoID string) *CommitCommand {
	return &CommitCommand{ctx: ctx, repoID: repoID}
}

// Execute validates the repository's commit input and submits it.
// Only one commit may be in flight at a time.
func (c *CommitCommand) Execute() tea.Cmd {
	s := c.ctx.State
	if !s.HasRepo(c.repoID) {
		c.ctx.skipped(domain.OpCommit, "unknown repository")
		return nil
	}
	if s.CommitLoading != "" {
		c.ctx.skipped(domain.OpCommit, "commit pending")
		return nil
	}

	input := s.CommitInput(c.repoID)
	if !input.Validate() {
		c.ctx.skipped(domain.OpCommit, "message invalid")
		return nil
	}

	id, message := c.repoID, input.Trimmed()
	s.ClearMessages()
	s.CommitLoading = id
	c.ctx.started(domain.OpCommit, id)

	ctx, svc := c.ctx.Ctx, c.ctx.Service
	return func() tea.Msg {
		resp, err := svc.CommitAndPush(ctx, id, message)
		return CommitFinishedMsg{RepoID: id, Response: resp, Err: err}
	}
}
