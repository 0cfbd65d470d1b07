package domain

import (
	"context"

	m "unic.dev/pkg/unic/internal/model"
)

// UI is the presentation surface the workflow drives. Implementations live
// in the controller package (plain console output, or a TTY review prompt).
type UI interface {
	// DisplayBanner prints the startup banner.
	DisplayBanner(ctx context.Context)

	// DisplayRunHeader announces how many cases are about to run.
	DisplayRunHeader(ctx context.Context, total int)

	// DisplayMissingRoot reports an input root that does not exist.
	DisplayMissingRoot(ctx context.Context, root m.Path)

	// DisplayCaseResult prints one per-case progress line. detail is
	// empty unless the outcome carries a reason worth showing.
	DisplayCaseResult(ctx context.Context, name string, outcome m.Outcome, detail string)

	// DisplayNotice prints an informational line.
	DisplayNotice(ctx context.Context, message string)

	// DisplayError reports a non-fatal error.
	DisplayError(ctx context.Context, err error)

	// DisplaySummary renders the per-outcome counts after the run.
	DisplaySummary(ctx context.Context, counts map[m.Outcome]int, total int, outputRoot m.Path)

	// RunReview drives the interactive review loop until the session
	// terminates. The returned error is fatal (viewer unavailable after
	// setup).
	RunReview(ctx context.Context, session *ReviewSession) error
}
