package state

import (
	"strings"
	"unicode/utf8"
)

// MaxCommitMessageLength bounds a commit message, counted in characters
const MaxCommitMessageLength = 200

// Field validation error codes
const (
	ErrRequired  = "required"
	ErrMaxLength = "maxlength"
)

// Field is a single text input with its validity markers
type Field struct {
	Value   string
	Touched bool
	Error   string // "" when valid or not yet validated
}

// Set replaces the value and clears a previous validation error
func (f *Field) Set(value string) {
	f.Value = value
	f.Error = ""
}

// Trimmed returns the value without surrounding whitespace
func (f *Field) Trimmed() string {
	return strings.TrimSpace(f.Value)
}

// Invalid reports whether the last validation failed
func (f *Field) Invalid() bool {
	return f.Error != ""
}

// Reset empties the field and clears its markers
func (f *Field) Reset() {
	*f = Field{}
}

// validateRequired marks the field touched and flags it when blank
func (f *Field) validateRequired() bool {
	f.Touched = true
	if f.Trimmed() == "" {
		f.Error = ErrRequired
		return false
	}
	f.Error = ""
	return true
}

// PatForm holds the PAT entry field
type PatForm struct {
	Pat Field
}

// Validate marks the form touched and reports whether it may be submitted
func (f *PatForm) Validate() bool {
	return f.Pat.validateRequired()
}

// Reset clears the form
func (f *PatForm) Reset() {
	f.Pat.Reset()
}

// RepoForm holds the add-repository fields
type RepoForm struct {
	URL    Field
	Branch Field
}

// Validate marks every field touched and reports whether the form may be submitted
func (f *RepoForm) Validate() bool {
	f.Branch.Touched = true
	return f.URL.validateRequired()
}

// BranchOrEmpty returns the trimmed branch, "" meaning "let the backend decide"
func (f *RepoForm) BranchOrEmpty() string {
	return f.Branch.Trimmed()
}

// Reset clears the form
func (f *RepoForm) Reset() {
	f.URL.Reset()
	f.Branch.Reset()
}

// CommitInput is the commit message field of one repository
type CommitInput struct {
	Field
}

// Validate marks the input touched and checks it is non-blank and short enough
func (c *CommitInput) Validate() bool {
	if !c.validateRequired() {
		return false
	}
	if utf8.RuneCountInString(c.Trimmed()) > MaxCommitMessageLength {
		c.Error = ErrMaxLength
		return false
	}
	return true
}
