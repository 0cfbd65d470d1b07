package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"unic.dev/pkg/unic/internal/adapter"
	m "unic.dev/pkg/unic/internal/model"
)

// CompareArgs carries everything one comparison run needs.
type CompareArgs struct {
	Target1   m.Target
	Target2   m.Target
	Inputs    []m.Path
	MaxDepth  int
	OutputDir m.Path
	Valgrind  bool
	Timeout   time.Duration
}

// ReviewArgs selects the results directory whose manifest should be
// reopened.
type ReviewArgs struct {
	OutputDir m.Path
}

// Workflow is the top-level driver: discovery, sequential case execution,
// evidence persistence and the post-run review session.
type Workflow interface {
	Compare(ctx context.Context, args CompareArgs) error
	Review(ctx context.Context, args ReviewArgs) error
}

type workflow struct {
	discoverer Discoverer
	runner     CaseRunner
	evidence   EvidenceStore
	manifests  adapter.ManifestStore
	viewer     adapter.DiffViewer
	ui         UI
}

// NewWorkflow wires the workflow from its collaborators.
func NewWorkflow(
	discoverer Discoverer,
	runner CaseRunner,
	evidence EvidenceStore,
	manifests adapter.ManifestStore,
	viewer adapter.DiffViewer,
	ui UI,
) Workflow {
	return &workflow{
		discoverer: discoverer,
		runner:     runner,
		evidence:   evidence,
		manifests:  manifests,
		viewer:     viewer,
		ui:         ui,
	}
}

func (w *workflow) Compare(ctx context.Context, args CompareArgs) error {
	w.ui.DisplayBanner(ctx)

	discovery := w.discoverer.Discover(args.Inputs, args.MaxDepth)
	for _, root := range discovery.Missing {
		w.ui.DisplayMissingRoot(ctx, root)
	}

	cases := AssignDisplayNames(discovery.Found)
	w.ui.DisplayRunHeader(ctx, len(cases))

	cfg := RunConfig{Valgrind: args.Valgrind, Timeout: args.Timeout}

	// Failed-case records and outcome counters are locals of this driver;
	// nothing here is shared across cases or held as package state.
	counts := make(map[m.Outcome]int, 5)

	var (
		records []m.EvidenceRecord
		entries []m.ManifestEntry
	)

	for _, c := range cases {
		// Operator interrupt is honored between cases only; a running
		// target is bounded by its own timeout.
		if ctx.Err() != nil {
			w.ui.DisplayNotice(ctx, "interrupted, stopping")
			break
		}

		outcome, entry := w.runCase(ctx, c, args, cfg, &records)
		counts[outcome]++

		if outcome != m.Pass {
			entries = append(entries, entry)
		}
	}

	w.ui.DisplaySummary(ctx, counts, len(cases), args.OutputDir)

	// Saved even when nothing failed, so a later `unic review` reflects
	// this run instead of a stale manifest from an earlier one.
	manifest := m.Manifest{
		Version:  m.ManifestVersion,
		Target1:  args.Target1.Raw,
		Target2:  args.Target2.Raw,
		Valgrind: args.Valgrind,
		Entries:  entries,
	}

	if err := w.manifests.Save(args.OutputDir, manifest); err != nil {
		w.ui.DisplayError(ctx, fmt.Errorf("saving run manifest: %w", err))
	}

	if ctx.Err() != nil || len(records) == 0 {
		return nil
	}

	return w.ui.RunReview(ctx, NewReviewSession(records, w.viewer))
}

// runCase executes one case, reports it, persists evidence on failure and
// returns the outcome plus its manifest entry.
func (w *workflow) runCase(ctx context.Context, c m.InputCase, args CompareArgs, cfg RunConfig, records *[]m.EvidenceRecord) (m.Outcome, m.ManifestEntry) {
	entry := m.ManifestEntry{
		DisplayName: c.DisplayName,
		Source:      string(c.Source),
	}

	result, err := w.runner.Run(ctx, c, args.Target1, args.Target2, cfg)
	if err != nil {
		outcome := classifyFailure(err)
		entry.Outcome = outcome.String()

		slog.Warn("case failed without comparable output",
			"case", c.DisplayName, "outcome", outcome.String(), "error", err)
		w.ui.DisplayCaseResult(ctx, c.DisplayName, outcome, err.Error())

		return outcome, entry
	}

	entry.Outcome = result.Outcome.String()
	w.ui.DisplayCaseResult(ctx, c.DisplayName, result.Outcome, "")

	if result.Outcome == m.Pass {
		return m.Pass, entry
	}

	record, err := w.evidence.Persist(c, result, args.Target1, args.Target2, args.OutputDir)
	if err != nil {
		// The case still counts as failed; only its evidence is gone.
		w.ui.DisplayError(ctx, err)
		return result.Outcome, entry
	}

	*records = append(*records, record)
	entry.EvidenceDir = string(record.Dir)
	entry.Outputs = []string{string(record.Outputs[0]), string(record.Outputs[1])}

	return result.Outcome, entry
}

func (w *workflow) Review(ctx context.Context, args ReviewArgs) error {
	manifest, err := w.manifests.Load(args.OutputDir)
	if err != nil {
		return fmt.Errorf("no reviewable run in %s: %w", args.OutputDir, err)
	}

	session := NewReviewSessionFromIndex(manifest.Index(), w.viewer)
	if session.Empty() {
		w.ui.DisplayNotice(ctx, fmt.Sprintf("nothing to review in %s", args.OutputDir))
		return nil
	}

	return w.ui.RunReview(ctx, session)
}

// classifyFailure maps a runner error onto the outcome taxonomy.
func classifyFailure(err error) m.Outcome {
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return m.Timeout
	}

	return m.ExecutionError
}
