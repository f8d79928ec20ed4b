package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventOperationStarted EventType = "OperationStarted"
	EventOperationFailed  EventType = "OperationFailed"
	EventPatUpdated       EventType = "PatUpdated"
	EventReposLoaded      EventType = "ReposLoaded"
	EventRepoAdded        EventType = "RepoAdded"
	EventCommitCompleted  EventType = "CommitCompleted"
	EventStateChanged     EventType = "StateChanged"
)

// Operation names one kind of asynchronous backend call
type Operation string

// Operations tracked by the orchestrator
const (
	OpLoadPat   Operation = "load-pat"
	OpSavePat   Operation = "save-pat"
	OpLoadRepos Operation = "load-repos"
	OpAddRepo   Operation = "add-repo"
	OpCommit    Operation = "commit"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// OperationStartedEvent is emitted when a call to the backend is issued
type OperationStartedEvent struct {
	Operation Operation
	RepoID    string // set for commits only
}

func (e OperationStartedEvent) Type() EventType { return EventOperationStarted }

// OperationFailedEvent is emitted when a backend call fails
type OperationFailedEvent struct {
	Operation Operation
	RepoID    string
	Message   string // text shown to the user
	Err       error
}

func (e OperationFailedEvent) Type() EventType { return EventOperationFailed }

// PatUpdatedEvent is emitted when the PAT status is replaced
type PatUpdatedEvent struct {
	Status PatStatus
}

func (e PatUpdatedEvent) Type() EventType { return EventPatUpdated }

// ReposLoadedEvent is emitted when the repository list is replaced
type ReposLoadedEvent struct {
	Count int
}

func (e ReposLoadedEvent) Type() EventType { return EventReposLoaded }

// RepoAddedEvent is emitted when a repository is registered
type RepoAddedEvent struct {
	Repo RepoSummary
}

func (e RepoAddedEvent) Type() EventType { return EventRepoAdded }

// CommitCompletedEvent is emitted when a commit-and-push returns
type CommitCompletedEvent struct {
	RepoID   string
	Response CommitResponse
}

func (e CommitCompletedEvent) Type() EventType { return EventCommitCompleted }

// StateChangedEvent is emitted after every state reconciliation so that
// renderers outside the update loop can re-read the snapshot
type StateChangedEvent struct {
	Revision uint64
}

func (e StateChangedEvent) Type() EventType { return EventStateChanged }
