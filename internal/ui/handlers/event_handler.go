package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"repopush/internal/api"
	"repopush/internal/domain"
	"repopush/internal/eventbus"
	"repopush/internal/ui/commands"
	"repopush/internal/ui/state"
)

// PatSavedMessage is shown after the PAT has been stored
const PatSavedMessage = "已更新個人存取權杖。"

// RepoAddedMessage formats the confirmation for a registered repository
func RepoAddedMessage(repo domain.RepoSummary) string {
	return fmt.Sprintf("已新增 %s/%s (%s)。", repo.Project, repo.Repository, repo.Branch)
}

// EventHandler applies operation results to the state. Only the success
// path of an operation writes its data; failures clear the loading flag and
// set the error message.
type EventHandler struct {
	state  *state.AppState
	bus    eventbus.EventBus
	logger *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, bus eventbus.EventBus, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{
		state:  appState,
		bus:    bus,
		logger: logger,
	}
}

// Handle reconciles state from an operation result and reports whether msg was one
func (h *EventHandler) Handle(msg tea.Msg) bool {
	switch m := msg.(type) {
	case commands.PatLoadedMsg:
		h.state.PatLoading = false
		if m.Err != nil {
			h.fail(domain.OpLoadPat, "", m.Err)
			return true
		}
		status := m.Status
		h.state.PatStatus = &status
		h.publish(eventbus.PatUpdatedEvent{Status: status})

	case commands.PatSavedMsg:
		h.state.PatLoading = false
		if m.Err != nil {
			h.fail(domain.OpSavePat, "", m.Err)
			return true
		}
		status := m.Status
		h.state.PatStatus = &status
		h.state.PatForm.Reset()
		h.state.SetInfo(PatSavedMessage)
		h.logger.Info("pat updated", zap.Bool("configured", status.Configured))
		h.publish(eventbus.PatUpdatedEvent{Status: status})

	case commands.ReposLoadedMsg:
		h.state.RepoListLoading = false
		if m.Err != nil {
			h.fail(domain.OpLoadRepos, "", m.Err)
			return true
		}
		h.state.ReplaceRepos(m.Repos)
		h.logger.Info("repositories loaded", zap.Int("count", len(h.state.Repos)))
		h.publish(eventbus.ReposLoadedEvent{Count: len(h.state.Repos)})

	case commands.RepoAddedMsg:
		h.state.AddRepoLoading = false
		if m.Err != nil {
			h.fail(domain.OpAddRepo, "", m.Err)
			return true
		}
		h.state.AppendRepo(m.Repo)
		h.state.RepoForm.Reset()
		h.state.SetInfo(RepoAddedMessage(m.Repo))
		h.logger.Info("repository added", zap.String("repo_id", m.Repo.ID), zap.String("name", m.Repo.DisplayName()))
		h.publish(eventbus.RepoAddedEvent{Repo: m.Repo})

	case commands.CommitFinishedMsg:
		if h.state.CommitLoading == m.RepoID {
			h.state.CommitLoading = ""
		}
		if m.Err != nil {
			h.fail(domain.OpCommit, m.RepoID, m.Err)
			return true
		}
		h.state.SetInfo(m.Response.Message)
		if m.Response.Committed {
			if input, ok := h.state.PeekCommitInput(m.RepoID); ok {
				input.Reset()
			}
		}
		h.logger.Info("commit finished",
			zap.String("repo_id", m.RepoID),
			zap.Bool("committed", m.Response.Committed))
		h.publish(eventbus.CommitCompletedEvent{RepoID: m.RepoID, Response: m.Response})

	default:
		return false
	}
	return true
}

func (h *EventHandler) fail(op domain.Operation, repoID string, err error) {
	message := api.UserMessage(err)
	h.state.SetError(message)
	h.logger.Warn("operation failed",
		zap.String("operation", string(op)),
		zap.String("repo_id", repoID),
		zap.Error(err))
	h.publish(eventbus.OperationFailedEvent{Operation: op, RepoID: repoID, Message: message, Err: err})
}

func (h *EventHandler) publish(event eventbus.DomainEvent) {
	if h.bus != nil {
		h.bus.Publish(event)
	}
}
