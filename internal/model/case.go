// Package model defines the data structures for output comparison runs.
package model

// Path represents a file system path.
type Path string

// InputCase is one unit of test input driving both targets under comparison.
type InputCase struct {
	// Source is the filesystem path to the input content, assigned at
	// discovery and never mutated afterward.
	Source Path

	// DisplayName is the human-facing identifier for the case, unique
	// within a run. Cases whose basename collides with another discovered
	// input carry a 1-based occurrence index, e.g. "x.txt[2]".
	DisplayName string
}
