package state

import (
	"repopush/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Backend data
	PatStatus *domain.PatStatus    // nil until the first load succeeds
	Repos     []domain.RepoSummary // server order

	// Operation states
	PatLoading      bool
	RepoListLoading bool
	AddRepoLoading  bool
	CommitLoading   string // id of the repository being committed, "" when idle

	// Message surface, last completed operation wins
	InfoMessage  string
	ErrorMessage string

	// Forms
	PatForm      PatForm
	RepoForm     RepoForm
	commitInputs map[string]*CommitInput // repo id -> input, created on first access

	// Revision increases on every reconciliation
	Revision uint64
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Repos:        make([]domain.RepoSummary, 0),
		commitInputs: make(map[string]*CommitInput),
	}
}

// Message operations

// ClearMessages clears both info and error messages
func (s *AppState) ClearMessages() {
	s.InfoMessage = ""
	s.ErrorMessage = ""
}

// SetInfo shows an info message, replacing any error
func (s *AppState) SetInfo(message string) {
	s.InfoMessage = message
	s.ErrorMessage = ""
}

// SetError shows an error message, replacing any info
func (s *AppState) SetError(message string) {
	s.ErrorMessage = message
	s.InfoMessage = ""
}

// Repository operations

// FindRepo returns the repository with the given id
func (s *AppState) FindRepo(id string) (domain.RepoSummary, bool) {
	for _, repo := range s.Repos {
		if repo.ID == id {
			return repo, true
		}
	}
	return domain.RepoSummary{}, false
}

// HasRepo reports whether id is in the repository list
func (s *AppState) HasRepo(id string) bool {
	_, ok := s.FindRepo(id)
	return ok
}

// ReplaceRepos swaps in a freshly loaded list. Duplicate ids keep their
// first occurrence and commit inputs of vanished repositories are dropped.
func (s *AppState) ReplaceRepos(repos []domain.RepoSummary) {
	seen := make(map[string]bool, len(repos))
	next := make([]domain.RepoSummary, 0, len(repos))
	for _, repo := range repos {
		if seen[repo.ID] {
			continue
		}
		seen[repo.ID] = true
		next = append(next, repo)
	}
	s.Repos = next

	for id := range s.commitInputs {
		if !seen[id] {
			delete(s.commitInputs, id)
		}
	}
}

// AppendRepo adds a repository at the end, or replaces the entry with the same id in place
func (s *AppState) AppendRepo(repo domain.RepoSummary) {
	next := make([]domain.RepoSummary, len(s.Repos), len(s.Repos)+1)
	copy(next, s.Repos)
	for i := range next {
		if next[i].ID == repo.ID {
			next[i] = repo
			s.Repos = next
			return
		}
	}
	s.Repos = append(next, repo)
}

// Commit input operations

// CommitInput returns the commit input of a repository, creating it on first access
func (s *AppState) CommitInput(repoID string) *CommitInput {
	input, ok := s.commitInputs[repoID]
	if !ok {
		input = &CommitInput{}
		s.commitInputs[repoID] = input
	}
	return input
}

// PeekCommitInput returns the commit input without creating it
func (s *AppState) PeekCommitInput(repoID string) (*CommitInput, bool) {
	input, ok := s.commitInputs[repoID]
	return input, ok
}

// CommitInputCount returns the number of materialised commit inputs
func (s *AppState) CommitInputCount() int {
	return len(s.commitInputs)
}

// Operation state queries

// AnyLoading reports whether any backend call is in flight
func (s *AppState) AnyLoading() bool {
	return s.PatLoading || s.RepoListLoading || s.AddRepoLoading || s.CommitLoading != ""
}

// IsCommitting reports whether repoID has a commit in flight
func (s *AppState) IsCommitting(repoID string) bool {
	return s.CommitLoading != "" && s.CommitLoading == repoID
}

// Touch bumps the revision after a mutation
func (s *AppState) Touch() uint64 {
	s.Revision++
	return s.Revision
}

// Snapshot is a read-only copy of AppState for renderers
type Snapshot struct {
	PatStatus       *domain.PatStatus
	Repos           []domain.RepoSummary
	PatLoading      bool
	RepoListLoading bool
	AddRepoLoading  bool
	CommitLoading   string
	InfoMessage     string
	ErrorMessage    string
	PatForm         PatForm
	RepoForm        RepoForm
	CommitInputs    map[string]CommitInput
	Revision        uint64
}

// Snapshot copies the current state
func (s *AppState) Snapshot() Snapshot {
	snap := Snapshot{
		Repos:           append([]domain.RepoSummary(nil), s.Repos...),
		PatLoading:      s.PatLoading,
		RepoListLoading: s.RepoListLoading,
		AddRepoLoading:  s.AddRepoLoading,
		CommitLoading:   s.CommitLoading,
		InfoMessage:     s.InfoMessage,
		ErrorMessage:    s.ErrorMessage,
		PatForm:         s.PatForm,
		RepoForm:        s.RepoForm,
		CommitInputs:    make(map[string]CommitInput, len(s.commitInputs)),
		Revision:        s.Revision,
	}
	if s.PatStatus != nil {
		status := *s.PatStatus
		snap.PatStatus = &status
	}
	for id, input := range s.commitInputs {
		snap.CommitInputs[id] = *input
	}
	return snap
}
