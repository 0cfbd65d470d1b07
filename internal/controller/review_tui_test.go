package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unic.dev/pkg/unic/internal/domain"
)

func typeLine(t *testing.T, model reviewModel, line string) reviewModel {
	t.Helper()

	for _, r := range line {
		next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})

		var ok bool
		model, ok = next.(reviewModel)
		require.True(t, ok)
	}

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	model, ok := next.(reviewModel)
	require.True(t, ok)

	return model
}

func TestReviewModel_OpensKnownCase(t *testing.T) {
	viewer := &stubViewer{}
	model := newReviewModel(testSession(viewer))

	model = typeLine(t, model, "x.txt")

	assert.Equal(t, 1, viewer.opened)
	assert.Contains(t, model.feedback, "Opening comparison viewer...")
	assert.False(t, model.quitting)
}

func TestReviewModel_UnknownCaseListsNames(t *testing.T) {
	model := newReviewModel(testSession(&stubViewer{}))

	model = typeLine(t, model, "missing.txt")

	assert.Contains(t, model.feedback, "'missing.txt' not found in results.")
	assert.Contains(t, model.feedback, "- x.txt")
}

func TestReviewModel_EmptySubmitPromptsAgain(t *testing.T) {
	model := newReviewModel(testSession(&stubViewer{}))

	model = typeLine(t, model, "")

	assert.Contains(t, model.feedback, "Please enter a case name.")
	assert.False(t, model.quitting)
}

func TestReviewModel_ExitQuits(t *testing.T) {
	model := newReviewModel(testSession(&stubViewer{}))

	model = typeLine(t, model, "exit")

	assert.True(t, model.quitting)
	require.NoError(t, model.fatal)
}

func TestReviewModel_EscQuits(t *testing.T) {
	model := newReviewModel(testSession(&stubViewer{}))

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	model, ok := next.(reviewModel)
	require.True(t, ok)
	assert.True(t, model.quitting)
	assert.Empty(t, model.View())
}

func TestReviewModel_ViewShowsPromptAndInput(t *testing.T) {
	model := newReviewModel(testSession(&stubViewer{}))

	view := model.View()
	assert.Contains(t, view, "Which case would you like to view the differences for?")
	assert.Contains(t, view, ">")
}

var _ domain.UI = (*ReviewTUI)(nil)
