package model

// Outcome classifies a completed comparison of one input case.
type Outcome int

const (
	// Pass indicates both targets produced identical output and, when
	// memory checking was enabled, clean diagnostics.
	Pass Outcome = iota
	// OutputMismatch indicates the two targets disagreed on stdout.
	OutputMismatch
	// MemoryError indicates outputs matched but a target's diagnostics
	// reported a memory-safety issue.
	MemoryError
	// Timeout indicates a target exceeded the per-execution time budget.
	Timeout
	// ExecutionError indicates the case could not be executed at all
	// (unreadable input, missing binary).
	ExecutionError
)

// String returns the human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case OutputMismatch:
		return "output mismatch"
	case MemoryError:
		return "memory error"
	case Timeout:
		return "timeout"
	case ExecutionError:
		return "execution error"
	}

	return "unknown"
}

// RunResult is the outcome of executing both targets against one input case.
// Stderr and memory flags are populated only when memory checking is enabled.
//
// Invariants: Outcome == Pass implies Stdout1 == Stdout2 and both memory
// flags false; Outcome == OutputMismatch implies Stdout1 != Stdout2 and the
// memory flags were never consulted.
type RunResult struct {
	Outcome Outcome

	Stdout1 string
	Stdout2 string
	Stderr1 string
	Stderr2 string

	MemoryFlag1 bool
	MemoryFlag2 bool
}

// EvidenceRecord locates the persisted artifacts for one failed case: the
// evidence directory derived from the case's source path and the per-target
// output files inside it.
type EvidenceRecord struct {
	Case    InputCase
	Dir     Path
	Outputs [2]Path
}

// ReviewIndex maps display names to their evidence records. Built once after
// a run completes and consumed only by the review session.
type ReviewIndex map[string]EvidenceRecord
