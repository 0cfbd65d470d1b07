package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"unic.dev/pkg/unic/internal/domain"
)

// ReviewTUI is the terminal implementation of domain.UI. Run reporting is
// shared with SimpleUI; only the review loop is replaced by a Bubble Tea
// prompt with an editable input field.
type ReviewTUI struct {
	*SimpleUI
}

// NewReviewTUI creates a new ReviewTUI.
func NewReviewTUI(cmd *cobra.Command) *ReviewTUI {
	return &ReviewTUI{SimpleUI: NewSimpleUI(cmd)}
}

// RunReview runs the interactive prompt until the session terminates.
func (t *ReviewTUI) RunReview(ctx context.Context, session *domain.ReviewSession) error {
	program := tea.NewProgram(
		newReviewModel(session),
		tea.WithContext(ctx),
		tea.WithInput(t.cmd.InOrStdin()),
		tea.WithOutput(t.cmd.OutOrStdout()),
	)

	final, err := program.Run()
	if err != nil {
		// An operator interrupt terminates the session gracefully.
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}

		return err
	}

	if model, ok := final.(reviewModel); ok {
		return model.fatal
	}

	return nil
}

type reviewModel struct {
	session  *domain.ReviewSession
	input    textinput.Model
	feedback string
	fatal    error
	quitting bool
}

func newReviewModel(session *domain.ReviewSession) reviewModel {
	input := textinput.New()
	input.Placeholder = "case name, or 'exit'"
	input.Prompt = "> "
	input.Focus()

	return reviewModel{
		session: session,
		input:   input,
	}
}

func (rm reviewModel) Init() tea.Cmd {
	return textinput.Blink
}

func (rm reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		rm.input, cmd = rm.input.Update(msg)

		return rm, cmd
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.quitting = true
		return rm, tea.Quit

	case tea.KeyEnter:
		return rm.handleSubmit()

	default:
		var cmd tea.Cmd
		rm.input, cmd = rm.input.Update(msg)

		return rm, cmd
	}
}

func (rm reviewModel) handleSubmit() (tea.Model, tea.Cmd) {
	line := rm.input.Value()
	rm.input.SetValue("")

	event, err := rm.session.Handle(line)
	if err != nil {
		rm.fatal = err
		rm.quitting = true

		return rm, tea.Quit
	}

	switch event {
	case domain.ReviewExit:
		rm.quitting = true
		return rm, tea.Quit

	case domain.ReviewEmpty:
		rm.feedback = warnStyle.Render("Please enter a case name.")

	case domain.ReviewUnknown:
		var b strings.Builder

		b.WriteString(failStyle.Render(fmt.Sprintf("'%s' not found in results.", strings.TrimSpace(line))))
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("Available cases:"))

		for _, name := range rm.session.Names() {
			b.WriteString("\n  - " + name)
		}

		rm.feedback = b.String()

	case domain.ReviewOpened:
		rm.feedback = passStyle.Render("Opening comparison viewer...")
	}

	return rm, nil
}

func (rm reviewModel) View() string {
	if rm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(infoStyle.Render("Which case would you like to view the differences for?"))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("(Type 'exit' or press Esc to quit)"))
	b.WriteString("\n\n")
	b.WriteString(rm.input.View())
	b.WriteString("\n")

	if rm.feedback != "" {
		b.WriteString("\n" + rm.feedback + "\n")
	}

	return b.String()
}
