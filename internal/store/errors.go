package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports a mutation that targeted a record no backend knows
// about, typically one deleted by another client.
var ErrNotFound = errors.New("recipe not found")

// ValidationError reports required fields that were blank. It is raised
// before any transport is touched.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// ConnectivityError wraps a transport or backend failure. Read paths degrade
// to an empty collection with a visible message; write paths keep the form
// open so the user can retry.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
