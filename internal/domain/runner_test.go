package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unic.dev/pkg/unic/internal/adapter"
	m "unic.dev/pkg/unic/internal/model"
)

// fakeProcessRunner replays scripted captures in call order and records
// every argv and stdin it was given.
type fakeProcessRunner struct {
	argvs   [][]string
	stdins  []string
	scripts []fakeProcResult
}

type fakeProcResult struct {
	capture adapter.ProcessCapture
	err     error
}

func (f *fakeProcessRunner) Run(_ context.Context, argv []string, stdin string, _ time.Duration) (adapter.ProcessCapture, error) {
	f.argvs = append(f.argvs, argv)
	f.stdins = append(f.stdins, stdin)

	if len(f.scripts) == 0 {
		return adapter.ProcessCapture{}, fmt.Errorf("unexpected process launch: %v", argv)
	}

	next := f.scripts[0]
	f.scripts = f.scripts[1:]

	return next.capture, next.err
}

func newTestCase(t *testing.T, content string) m.InputCase {
	t.Helper()

	path := filepath.Join(t.TempDir(), "case.txt")
	writeTestFile(t, path, content)

	return m.InputCase{Source: m.Path(path), DisplayName: "case.txt"}
}

// newTestTarget materializes a target program on disk so the valgrind-mode
// existence check passes.
func newTestTarget(t *testing.T, name string) m.Target {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	writeTestFile(t, path, "#!/bin/sh\n")

	return m.Target{Raw: path, Program: path}
}

func TestCaseRunner_OutputMismatch(t *testing.T) {
	proc := &fakeProcessRunner{scripts: []fakeProcResult{
		{capture: adapter.ProcessCapture{Stdout: "hello"}},
		{capture: adapter.ProcessCapture{Stdout: "olleh"}},
	}}

	runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)
	c := newTestCase(t, "hello")

	result, err := runner.Run(context.Background(), c,
		m.Target{Program: "./echo", Raw: "./echo"},
		m.Target{Program: "./reverse", Raw: "./reverse"},
		RunConfig{Timeout: time.Second})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, m.OutputMismatch, result.Outcome)
	assert.Equal(t, "hello", result.Stdout1)
	assert.Equal(t, "olleh", result.Stdout2)

	// Both targets received the full case content on stdin.
	assert.Equal(t, []string{"hello", "hello"}, proc.stdins)
}

func TestCaseRunner_Pass(t *testing.T) {
	proc := &fakeProcessRunner{scripts: []fakeProcResult{
		{capture: adapter.ProcessCapture{Stdout: "42\n"}},
		{capture: adapter.ProcessCapture{Stdout: "42\n"}},
	}}

	runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)

	result, err := runner.Run(context.Background(), newTestCase(t, "in"),
		m.Target{Program: "a"}, m.Target{Program: "b"}, RunConfig{Timeout: time.Second})
	require.NoError(t, err)

	assert.Equal(t, m.Pass, result.Outcome)
	assert.False(t, result.MemoryFlag1)
	assert.False(t, result.MemoryFlag2)
}

func TestCaseRunner_ProgramResolvedToAbsolutePath(t *testing.T) {
	proc := &fakeProcessRunner{scripts: []fakeProcResult{{}, {}}}
	runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)

	_, err := runner.Run(context.Background(), newTestCase(t, "x"),
		m.Target{Program: "./prog1"}, m.Target{Program: "./prog2"}, RunConfig{Timeout: time.Second})
	require.NoError(t, err)

	require.Len(t, proc.argvs, 2)
	assert.True(t, filepath.IsAbs(proc.argvs[0][0]), "argv[0] = %s", proc.argvs[0][0])
	assert.True(t, filepath.IsAbs(proc.argvs[1][0]), "argv[0] = %s", proc.argvs[1][0])
}

func TestCaseRunner_ValgrindWrapsBothTargets(t *testing.T) {
	diag := "==1== ERROR SUMMARY: 2 errors from 1 contexts"

	proc := &fakeProcessRunner{scripts: []fakeProcResult{
		{capture: adapter.ProcessCapture{Stdout: "same", Stderr: diag}},
		{capture: adapter.ProcessCapture{Stdout: "same"}},
	}}

	runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)

	result, err := runner.Run(context.Background(), newTestCase(t, "x"),
		newTestTarget(t, "a"), newTestTarget(t, "b"),
		RunConfig{Valgrind: true, Timeout: time.Second})
	require.NoError(t, err)

	assert.Equal(t, "valgrind", proc.argvs[0][0])
	assert.Equal(t, "valgrind", proc.argvs[1][0])
	assert.Contains(t, proc.argvs[0], "--leak-check=full")

	assert.Equal(t, m.MemoryError, result.Outcome)
	assert.True(t, result.MemoryFlag1)
	assert.False(t, result.MemoryFlag2)
	assert.Equal(t, diag, result.Stderr1)
}

func TestCaseRunner_StderrIgnoredWithoutValgrind(t *testing.T) {
	proc := &fakeProcessRunner{scripts: []fakeProcResult{
		{capture: adapter.ProcessCapture{Stdout: "same", Stderr: "noise"}},
		{capture: adapter.ProcessCapture{Stdout: "same"}},
	}}

	runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)

	result, err := runner.Run(context.Background(), newTestCase(t, "x"),
		m.Target{Program: "a"}, m.Target{Program: "b"}, RunConfig{Timeout: time.Second})
	require.NoError(t, err)

	assert.Equal(t, m.Pass, result.Outcome)
	assert.Empty(t, result.Stderr1)
}

func TestCaseRunner_TimeoutSkipsSecondTarget(t *testing.T) {
	proc := &fakeProcessRunner{scripts: []fakeProcResult{
		{err: fmt.Errorf("%w: prog", adapter.ErrProcessTimeout)},
	}}

	runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)

	result, err := runner.Run(context.Background(), newTestCase(t, "x"),
		m.Target{Program: "slow"}, m.Target{Program: "fast"}, RunConfig{Timeout: time.Millisecond})

	require.Error(t, err)
	assert.Nil(t, result, "timeouts carry no result object")

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "slow", timeoutErr.Target)

	assert.Len(t, proc.argvs, 1, "target2 must never launch after a timeout")
}

func TestCaseRunner_LaunchFailureDistinguishesToolFromTarget(t *testing.T) {
	t.Run("missing target", func(t *testing.T) {
		proc := &fakeProcessRunner{scripts: []fakeProcResult{
			{err: fmt.Errorf("%w: ./gone", adapter.ErrProgramNotFound)},
		}}

		runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)

		result, err := runner.Run(context.Background(), newTestCase(t, "x"),
			m.Target{Program: "./gone"}, m.Target{Program: "b"}, RunConfig{Timeout: time.Second})

		assert.Nil(t, result)

		var launchErr *LaunchError
		require.ErrorAs(t, err, &launchErr)
		assert.False(t, launchErr.Tool)
	})

	t.Run("missing valgrind", func(t *testing.T) {
		proc := &fakeProcessRunner{scripts: []fakeProcResult{
			{err: fmt.Errorf("%w: valgrind", adapter.ErrProgramNotFound)},
		}}

		runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)

		_, err := runner.Run(context.Background(), newTestCase(t, "x"),
			newTestTarget(t, "a"), newTestTarget(t, "b"),
			RunConfig{Valgrind: true, Timeout: time.Second})

		var launchErr *LaunchError
		require.ErrorAs(t, err, &launchErr)
		assert.True(t, launchErr.Tool)
		assert.Contains(t, launchErr.Error(), "valgrind")
	})
}

func TestCaseRunner_ValgrindMissingTargetIsLaunchError(t *testing.T) {
	// Valgrind swallows a missing target: it launches, fails to exec and
	// exits nonzero, producing two empty stdouts. Without the existence
	// check the case would classify as a pass.
	proc := &fakeProcessRunner{scripts: []fakeProcResult{{}, {}}}
	runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)

	gone := m.Target{Program: filepath.Join(t.TempDir(), "gone")}

	result, err := runner.Run(context.Background(), newTestCase(t, "x"),
		gone, newTestTarget(t, "b"),
		RunConfig{Valgrind: true, Timeout: time.Second})

	assert.Nil(t, result)

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.False(t, launchErr.Tool)

	assert.Empty(t, proc.argvs, "nothing may launch when the target is absent")
}

func TestCaseRunner_UnreadableInputLaunchesNothing(t *testing.T) {
	proc := &fakeProcessRunner{}
	runner := NewCaseRunner(adapter.NewLocalCaseFSAdapter(), proc)

	c := m.InputCase{Source: m.Path(filepath.Join(t.TempDir(), "missing.txt")), DisplayName: "missing.txt"}

	result, err := runner.Run(context.Background(), c,
		m.Target{Program: "a"}, m.Target{Program: "b"}, RunConfig{Timeout: time.Second})

	assert.Nil(t, result)

	var readErr *InputReadError
	require.True(t, errors.As(err, &readErr))

	assert.Empty(t, proc.argvs, "no target may launch when the input is unreadable")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name             string
		stdout1, stdout2 string
		mem1, mem2       bool
		valgrind         bool
		want             m.Outcome
	}{
		{name: "identical outputs pass", stdout1: "a", stdout2: "a", want: m.Pass},
		{name: "different outputs mismatch", stdout1: "a", stdout2: "b", want: m.OutputMismatch},
		{
			name:    "mismatch wins over memory flags",
			stdout1: "a", stdout2: "b",
			mem1: true, mem2: true, valgrind: true,
			want: m.OutputMismatch,
		},
		{
			name:    "memory flag with matching outputs",
			stdout1: "a", stdout2: "a",
			mem2: true, valgrind: true,
			want: m.MemoryError,
		},
		{
			name:    "memory flags ignored without valgrind",
			stdout1: "a", stdout2: "a",
			mem1: true,
			want: m.Pass,
		},
		{name: "both empty pass", want: m.Pass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.stdout1, tt.stdout2, tt.mem1, tt.mem2, tt.valgrind)
			assert.Equal(t, tt.want, got)

			// Pure: same inputs, same outcome.
			assert.Equal(t, got, Classify(tt.stdout1, tt.stdout2, tt.mem1, tt.mem2, tt.valgrind))
		})
	}
}
