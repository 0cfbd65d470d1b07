// Package domain implements the comparison run: input discovery, case
// execution, verdict classification, evidence persistence and the review
// session.
package domain

import (
	"fmt"

	m "unic.dev/pkg/unic/internal/model"
)

// InputReadError reports that a case's input content could not be read. The
// case is marked as an execution error; the run continues.
type InputReadError struct {
	Case m.InputCase
	Err  error
}

func (e *InputReadError) Error() string {
	return fmt.Sprintf("reading input %s: %v", e.Case.Source, e.Err)
}

func (e *InputReadError) Unwrap() error { return e.Err }

// LaunchError reports that a binary could not be started. Tool marks the
// case where the missing binary is the memory-check tool rather than the
// target program, which needs a different remedy from the operator.
type LaunchError struct {
	Program string
	Tool    bool
	Err     error
}

func (e *LaunchError) Error() string {
	if e.Tool {
		return fmt.Sprintf("memory-check tool %s is not installed or not on PATH: %v", e.Program, e.Err)
	}

	return fmt.Sprintf("cannot launch target %s: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// TimeoutError reports that a target ran past the configured budget and was
// killed. Target2 is never launched when target1 times out.
type TimeoutError struct {
	Target string
	Err    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("target %s timed out: %v", e.Target, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// PersistenceError reports an evidence write failure. The case still counts
// as failed; the run continues.
type PersistenceError struct {
	Case m.InputCase
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("saving evidence for %s: %v", e.Case.DisplayName, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ViewerLaunchError reports that the external comparison viewer could not be
// launched even after a setup attempt. It is fatal to the review session
// only; persisted evidence is untouched.
type ViewerLaunchError struct {
	Err error
}

func (e *ViewerLaunchError) Error() string {
	return fmt.Sprintf("comparison viewer unavailable after setup: %v", e.Err)
}

func (e *ViewerLaunchError) Unwrap() error { return e.Err }
