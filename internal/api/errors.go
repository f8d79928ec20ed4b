package api

import (
	"errors"
	"fmt"
	"sort"
)

// FallbackMessage is shown when a failure carries no server message
const FallbackMessage = "操作失敗，請稍後再試。"

// ValidationError means the backend rejected the request content (HTTP 4xx)
type ValidationError struct {
	Status  int
	Message string
	Fields  map[string]string // field name -> message, when the backend sent them
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected (status %d)", e.Status)
	}
	return fmt.Sprintf("request rejected (status %d): %s", e.Status, e.Message)
}

// NotFoundError means the backend does not know the repository id
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "not found"
	}
	return "not found: " + e.Message
}

// TransportError covers network failures, timeouts, server errors and
// responses that could not be decoded
type TransportError struct {
	Status  int // zero when no response was received
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.Status == 0:
		return fmt.Sprintf("transport failure: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("transport failure (status %d): %v", e.Status, e.Err)
	case e.Message != "":
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage returns the text to surface for err: the server message when
// one could be extracted, otherwise FallbackMessage
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Message != "" {
			return validationErr.Message
		}
		if msg := firstFieldMessage(validationErr.Fields); msg != "" {
			return msg
		}
		return FallbackMessage
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) && notFoundErr.Message != "" {
		return notFoundErr.Message
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) && transportErr.Message != "" {
		return transportErr.Message
	}

	return FallbackMessage
}

// firstFieldMessage picks a field message deterministically
func firstFieldMessage(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fields[names[0]]
}
