package gql

import (
	"fmt"
	"strings"
)

// ErrorEntry is one entry of a GraphQL response's errors array.
type ErrorEntry struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Error is returned when the server answers with a non-empty errors array. Any
// partial data in the same response is discarded.
type Error struct {
	Errors []ErrorEntry
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		msgs = append(msgs, entry.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// HTTPError is returned for a non-2xx response status.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the status is worth retrying.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
