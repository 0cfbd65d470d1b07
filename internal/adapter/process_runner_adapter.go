package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// ErrProcessTimeout reports that a child process exceeded its time budget
// and was forcibly terminated.
var ErrProcessTimeout = errors.New("process timed out")

// waitDelay bounds how long Wait may linger after the deadline kill. The
// kill reaches only the direct child; a grandchild that inherited the output
// pipes would otherwise keep them open and stall Wait until it exits on its
// own.
const waitDelay = time.Second

// ErrProgramNotFound reports that the program at argv[0] could not be
// located or started.
var ErrProgramNotFound = errors.New("program not found")

// ProcessCapture holds the full captured output streams of one child
// process.
type ProcessCapture struct {
	Stdout string
	Stderr string
}

// ProcessRunner abstracts child-process execution for the case runner.
type ProcessRunner interface {
	// Run executes argv with stdin fed to the process's standard input,
	// waiting up to timeout. Both output streams are captured fully. A
	// nonzero exit status is not an error; only failure to start or a
	// timeout is.
	Run(ctx context.Context, argv []string, stdin string, timeout time.Duration) (ProcessCapture, error)
}

// LocalProcessRunner provides a concrete ProcessRunner using os/exec. The
// context deadline guarantees the child is killed and reaped on every exit
// path, including timeout.
type LocalProcessRunner struct{}

// NewLocalProcessRunner constructs a LocalProcessRunner.
func NewLocalProcessRunner() *LocalProcessRunner {
	return &LocalProcessRunner{}
}

// Run executes argv with the given stdin and timeout.
func (a *LocalProcessRunner) Run(ctx context.Context, argv []string, stdin string, timeout time.Duration) (ProcessCapture, error) {
	if len(argv) == 0 {
		return ProcessCapture{}, fmt.Errorf("empty argv")
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// #nosec G204 - argv is the operator's own command line.
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	capture := ProcessCapture{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return capture, fmt.Errorf("%w after %s: %s", ErrProcessTimeout, timeout, argv[0])
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Exit codes are not part of the verdict; only output
			// content matters.
			return capture, nil
		}

		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return capture, fmt.Errorf("%w: %s", ErrProgramNotFound, argv[0])
		}

		return capture, fmt.Errorf("running %s: %w", argv[0], err)
	}

	return capture, nil
}
