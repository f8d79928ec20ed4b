package domain

import "fmt"

// PatStatus reports whether the backend holds a personal access token
type PatStatus struct {
	Configured bool   `json:"configured"`
	MaskedPat  string `json:"maskedPat"` // redacted form, empty when not configured
}

// RepoSummary represents one repository tracked by the backend
type RepoSummary struct {
	ID             string `json:"id"`
	Project        string `json:"project"`
	Repository     string `json:"repository"`
	Branch         string `json:"branch"`
	URL            string `json:"url"`
	Path           string `json:"path"`
	YearBranchPath string `json:"yearBranchPath"`
}

// DisplayName returns "project/repository (branch)"
func (r RepoSummary) DisplayName() string {
	return fmt.Sprintf("%s/%s (%s)", r.Project, r.Repository, r.Branch)
}

// CreateRepoRequest registers a repository. Branch is omitted from the
// request body when empty so the backend falls back to its own default.
type CreateRepoRequest struct {
	URL    string `json:"url"`
	Branch string `json:"branch,omitempty"`
}

// SetPatRequest carries a raw token to the backend
type SetPatRequest struct {
	Pat string `json:"pat"`
}

// CommitRequest carries the commit message for a commit-and-push
type CommitRequest struct {
	Message string `json:"message"`
}

// CommitResponse is the outcome of a commit-and-push.
// Committed is false when there was nothing to commit.
type CommitResponse struct {
	Committed bool   `json:"committed"`
	Message   string `json:"message"`
}
