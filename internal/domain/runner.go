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

// RunConfig carries the per-run execution settings.
type RunConfig struct {
	// Valgrind wraps both targets in the memory-check supervisor.
	Valgrind bool

	// Timeout bounds each target execution separately.
	Timeout time.Duration
}

// CaseRunner executes both targets against one input case and classifies
// the result.
type CaseRunner interface {
	// Run feeds the case's content to target1 and then target2 on their
	// standard input, strictly in sequence. The returned RunResult is nil
	// exactly when no comparable output exists: unreadable input, launch
	// failure, or a timeout. Those conditions are reported through the
	// typed error.
	Run(ctx context.Context, c m.InputCase, target1, target2 m.Target, cfg RunConfig) (*m.RunResult, error)
}

type caseRunner struct {
	fs   adapter.CaseFSAdapter
	proc adapter.ProcessRunner
}

// NewCaseRunner constructs a CaseRunner backed by the given filesystem and
// process adapters.
func NewCaseRunner(fsAdapter adapter.CaseFSAdapter, proc adapter.ProcessRunner) CaseRunner {
	return &caseRunner{fs: fsAdapter, proc: proc}
}

func (r *caseRunner) Run(ctx context.Context, c m.InputCase, target1, target2 m.Target, cfg RunConfig) (*m.RunResult, error) {
	content, err := r.fs.ReadFile(c.Source)
	if err != nil {
		return nil, &InputReadError{Case: c, Err: err}
	}

	input := string(content)

	capture1, err := r.runTarget(ctx, target1, input, cfg)
	if err != nil {
		return nil, err
	}

	// Target2 is launched only after target1 completed within budget.
	capture2, err := r.runTarget(ctx, target2, input, cfg)
	if err != nil {
		return nil, err
	}

	result := &m.RunResult{
		Stdout1: capture1.Stdout,
		Stdout2: capture2.Stdout,
	}

	if cfg.Valgrind {
		result.Stderr1 = capture1.Stderr
		result.Stderr2 = capture2.Stderr
		result.MemoryFlag1 = MemoryErrorDetected(capture1.Stderr)
		result.MemoryFlag2 = MemoryErrorDetected(capture2.Stderr)
	}

	result.Outcome = Classify(result.Stdout1, result.Stdout2, result.MemoryFlag1, result.MemoryFlag2, cfg.Valgrind)

	slog.Debug("case executed",
		"case", c.DisplayName,
		"outcome", result.Outcome.String(),
	)

	return result, nil
}

// runTarget resolves the target program, optionally wraps it in valgrind and
// executes it with the case content on stdin.
func (r *caseRunner) runTarget(ctx context.Context, target m.Target, input string, cfg RunConfig) (adapter.ProcessCapture, error) {
	argv := target.Argv()

	absProgram, err := r.fs.Abs(m.Path(target.Program))
	if err == nil {
		argv[0] = string(absProgram)
	}

	if cfg.Valgrind {
		// A missing target does not fail the wrapped launch: valgrind
		// starts fine, cannot exec the target and exits nonzero, which
		// is not an error on its own. The target has to be checked
		// before wrapping.
		if _, statErr := r.fs.FileInfo(m.Path(argv[0])); statErr != nil {
			return adapter.ProcessCapture{}, &LaunchError{Program: argv[0], Err: statErr}
		}

		argv = WrapValgrind(argv)
	}

	capture, err := r.proc.Run(ctx, argv, input, cfg.Timeout)
	if err == nil {
		return capture, nil
	}

	if errors.Is(err, adapter.ErrProcessTimeout) {
		return capture, &TimeoutError{Target: target.Name(), Err: err}
	}

	if errors.Is(err, adapter.ErrProgramNotFound) {
		return capture, &LaunchError{
			Program: argv[0],
			Tool:    cfg.Valgrind && argv[0] == valgrindProgram,
			Err:     err,
		}
	}

	return capture, fmt.Errorf("executing %s: %w", target.Name(), err)
}

// Classify is the pure verdict policy. Output equality is decided first;
// memory flags are consulted only when memory checking is enabled and the
// outputs matched.
func Classify(stdout1, stdout2 string, memFlag1, memFlag2, valgrind bool) m.Outcome {
	if stdout1 != stdout2 {
		return m.OutputMismatch
	}

	if valgrind && (memFlag1 || memFlag2) {
		return m.MemoryError
	}

	return m.Pass
}
