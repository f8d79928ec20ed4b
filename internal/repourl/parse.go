// Package repourl previews how the backend will interpret an Azure DevOps
// repository URL before it is submitted.
package repourl

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const gitSegment = "_git"

// Location is a parsed Azure DevOps repository URL
type Location struct {
	URL        string
	Project    string
	Repository string
	Branch     string // empty when the URL names no branch
}

// ParseError indicates a URL the backend would not recognise
type ParseError struct {
	Input   string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Input, e.Message)
}

// Parse extracts project, repository and branch from an Azure DevOps URL of
// the form .../{project}/_git/{repository}[?version=GB{branch}|?branch={branch}]
func Parse(raw string) (Location, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Location{}, ParseError{Input: raw, Message: "required value"}
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return Location{}, ParseError{Input: raw, Message: "invalid url"}
	}

	var segments []string
	for _, segment := range strings.Split(u.EscapedPath(), "/") {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		decoded, err := url.PathUnescape(segment)
		if err != nil {
			return Location{}, ParseError{Input: raw, Message: "invalid path"}
		}
		segments = append(segments, decoded)
	}

	gitIndex := -1
	for i, segment := range segments {
		if segment == gitSegment {
			gitIndex = i
			break
		}
	}
	if gitIndex < 1 || gitIndex+1 >= len(segments) {
		return Location{}, ParseError{Input: raw, Message: "expected .../{project}/_git/{repository}"}
	}

	return Location{
		URL:        trimmed,
		Project:    segments[gitIndex-1],
		Repository: segments[gitIndex+1],
		Branch:     parseBranch(u.RawQuery),
	}, nil
}

// parseBranch honours the first version=GB... or branch=... parameter
func parseBranch(rawQuery string) string {
	for _, parameter := range strings.Split(rawQuery, "&") {
		key, value, found := strings.Cut(parameter, "=")
		if !found {
			continue
		}
		if strings.EqualFold(key, "version") && strings.HasPrefix(value, "GB") {
			return decodeBranch(value[2:])
		}
		if strings.EqualFold(key, "branch") {
			return decodeBranch(value)
		}
	}
	return ""
}

func decodeBranch(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	return strings.TrimPrefix(decoded, "refs/heads/")
}

var unsafeFolderChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// FolderName derives the workspace folder the backend clones into
func FolderName(project, repository, branch string) string {
	return strings.Join([]string{sanitize(project), sanitize(repository), sanitize(branch)}, "_")
}

func sanitize(value string) string {
	cleaned := unsafeFolderChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), "-")
	if strings.TrimSpace(cleaned) == "" {
		return "repo"
	}
	return cleaned
}

// Preview describes what registering raw with the optional branch override
// would produce. It returns "" when raw cannot be parsed.
func Preview(raw, branchOverride string) string {
	loc, err := Parse(raw)
	if err != nil {
		return ""
	}
	branch := strings.TrimSpace(branchOverride)
	if branch == "" {
		branch = loc.Branch
	}
	if branch == "" {
		return fmt.Sprintf("%s/%s (預設分支)", loc.Project, loc.Repository)
	}
	return fmt.Sprintf("%s/%s (%s) → %s", loc.Project, loc.Repository, branch, FolderName(loc.Project, loc.Repository, branch))
}
