package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"unic.dev/pkg/unic/internal/domain"
	m "unic.dev/pkg/unic/internal/model"
)

func TestReviewCmd_UsesConfiguredOutputDir(t *testing.T) {
	mockWf := &mockWorkflow{}
	swapWorkflow(t, mockWf)

	mockWf.On("Review", mock.Anything, mock.MatchedBy(func(args domain.ReviewArgs) bool {
		return args.OutputDir == m.Path("archive")
	})).Return(nil)

	cmd := newTestRootCmd()
	cmd.AddCommand(newReviewCmd())
	cmd.SetArgs([]string{"review", "-o", "archive"})

	err := cmd.Execute()
	require.NoError(t, err)
	mockWf.AssertExpectations(t)
}

func TestReviewCmd_RejectsPositionalArgs(t *testing.T) {
	mockWf := &mockWorkflow{}
	swapWorkflow(t, mockWf)

	cmd := newTestRootCmd()
	cmd.AddCommand(newReviewCmd())
	cmd.SetArgs([]string{"review", "extra"})

	err := cmd.Execute()
	require.Error(t, err)
	mockWf.AssertNotCalled(t, "Review", mock.Anything, mock.Anything)
}

func TestReviewCmd_PropagatesWorkflowError(t *testing.T) {
	mockWf := &mockWorkflow{}
	swapWorkflow(t, mockWf)

	wantErr := errors.New("no manifest found")
	mockWf.On("Review", mock.Anything, mock.Anything).Return(wantErr)

	cmd := newTestRootCmd()
	cmd.AddCommand(newReviewCmd())
	cmd.SetArgs([]string{"review", "-o", "archive"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}
