package ui

import (
	"fmt"

	"repopush/internal/eventbus"
)

// EventMsg wraps a domain event forwarded from the bus
type EventMsg struct {
	Event eventbus.DomainEvent
}

// describeEvent renders an event for the activity line. It returns "" for
// events not worth showing.
func describeEvent(event eventbus.DomainEvent) string {
	switch e := event.(type) {
	case eventbus.OperationStartedEvent:
		if e.RepoID != "" {
			return fmt.Sprintf("→ %s %s", e.Operation, e.RepoID)
		}
		return fmt.Sprintf("→ %s", e.Operation)
	case eventbus.OperationFailedEvent:
		if e.RepoID != "" {
			return fmt.Sprintf("✗ %s %s: %v", e.Operation, e.RepoID, e.Err)
		}
		return fmt.Sprintf("✗ %s: %v", e.Operation, e.Err)
	case eventbus.ReposLoadedEvent:
		return fmt.Sprintf("✓ load-repos (%d)", e.Count)
	case eventbus.PatUpdatedEvent:
		return fmt.Sprintf("✓ pat (configured=%t)", e.Status.Configured)
	case eventbus.RepoAddedEvent:
		return fmt.Sprintf("✓ add-repo %s", e.Repo.ID)
	case eventbus.CommitCompletedEvent:
		return fmt.Sprintf("✓ commit %s (committed=%t)", e.RepoID, e.Response.Committed)
	default:
		return ""
	}
}
