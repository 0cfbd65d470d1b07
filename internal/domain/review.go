package domain

import (
	"errors"
	"sort"
	"strings"

	"unic.dev/pkg/unic/internal/adapter"
	m "unic.dev/pkg/unic/internal/model"
)

// ReviewEvent describes what one line of operator input did to the review
// session.
type ReviewEvent int

const (
	// ReviewExit terminates the session.
	ReviewExit ReviewEvent = iota
	// ReviewEmpty means the input was blank; re-prompt.
	ReviewEmpty
	// ReviewUnknown means the name is not in the index; re-prompt after
	// listing valid names.
	ReviewUnknown
	// ReviewOpened means the viewer was launched on the case's outputs.
	ReviewOpened
)

// ReviewSession resolves display names to persisted evidence and launches
// the external comparison viewer. It moves between two states, prompting and
// terminated; Handle implements one prompting step.
type ReviewSession struct {
	index     m.ReviewIndex
	viewer    adapter.DiffViewer
	setupDone bool
}

// NewReviewSession builds a session over the failed cases of a run.
func NewReviewSession(records []m.EvidenceRecord, viewer adapter.DiffViewer) *ReviewSession {
	index := make(m.ReviewIndex, len(records))
	for _, record := range records {
		index[record.Case.DisplayName] = record
	}

	return &ReviewSession{index: index, viewer: viewer}
}

// NewReviewSessionFromIndex builds a session from a reloaded manifest index.
func NewReviewSessionFromIndex(index m.ReviewIndex, viewer adapter.DiffViewer) *ReviewSession {
	return &ReviewSession{index: index, viewer: viewer}
}

// Empty reports whether there is nothing to review.
func (s *ReviewSession) Empty() bool {
	return len(s.index) == 0
}

// Names returns all valid display names, sorted.
func (s *ReviewSession) Names() []string {
	names := make([]string, 0, len(s.index))
	for name := range s.index {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Handle processes one line of operator input. "exit" (case-insensitive)
// ends the session; a valid display name opens the viewer on the two stored
// outputs. A non-nil error is a ViewerLaunchError and is fatal to the
// session.
func (s *ReviewSession) Handle(line string) (ReviewEvent, error) {
	line = strings.TrimSpace(line)

	if line == "" {
		return ReviewEmpty, nil
	}

	if strings.EqualFold(line, "exit") {
		return ReviewExit, nil
	}

	record, ok := s.index[line]
	if !ok {
		return ReviewUnknown, nil
	}

	if err := s.open(record); err != nil {
		return ReviewExit, err
	}

	return ReviewOpened, nil
}

// open launches the viewer fire-and-forget. A missing viewer binary triggers
// a one-time setup attempt and a single retry; failing that, the session is
// over.
func (s *ReviewSession) open(record m.EvidenceRecord) error {
	err := s.viewer.Open(record.Outputs[0], record.Outputs[1])
	if err == nil {
		return nil
	}

	if !errors.Is(err, adapter.ErrViewerNotFound) || s.setupDone {
		return &ViewerLaunchError{Err: err}
	}

	s.setupDone = true

	if setupErr := s.viewer.Setup(); setupErr != nil {
		return &ViewerLaunchError{Err: setupErr}
	}

	if err := s.viewer.Open(record.Outputs[0], record.Outputs[1]); err != nil {
		return &ViewerLaunchError{Err: err}
	}

	return nil
}
