package commands

import (
	"repopush/internal/domain"
)

// PatLoadedMsg carries the result of a PAT status load
type PatLoadedMsg struct {
	Status domain.PatStatus
	Err    error
}

// PatSavedMsg carries the result of a PAT update
type PatSavedMsg struct {
	Status domain.PatStatus
	Err    error
}

// ReposLoadedMsg carries the result of a repository list load
type ReposLoadedMsg struct {
	Repos []domain.RepoSummary
	Err   error
}

// RepoAddedMsg carries the result of a repository registration
type RepoAddedMsg struct {
	Repo domain.RepoSummary
	Err  error
}

// CommitFinishedMsg carries the result of a commit-and-push
type CommitFinishedMsg struct {
	RepoID   string
	Response domain.CommitResponse
	Err      error
}
