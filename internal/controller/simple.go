package controller

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"unic.dev/pkg/unic/internal/domain"
	m "unic.dev/pkg/unic/internal/model"
)

const bannerTitle = "UniCompare"

const bannerTagline = "Run two programs against the same inputs and compare their output."

// SimpleUI implements domain.UI using cobra Command's output streams, with a
// plain line-based review loop.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayBanner prints the startup banner.
func (s *SimpleUI) DisplayBanner(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n%s\n\n", bannerStyle.Render(bannerTitle), infoStyle.Render(bannerTagline))
}

// DisplayRunHeader announces how many cases are about to run.
func (s *SimpleUI) DisplayRunHeader(ctx context.Context, total int) {
	if err := ctx.Err(); err != nil {
		return
	}

	rule := strings.Repeat("=", 60)
	s.printf("%s\n%s\n%s\n", rule, boldStyle.Render(fmt.Sprintf("Running tests on %d case(s)...", total)), rule)
}

// DisplayMissingRoot reports an input root that does not exist.
func (s *SimpleUI) DisplayMissingRoot(ctx context.Context, root m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", failStyle.Render(fmt.Sprintf("[!!] %s (file/directory not found)", root)))
}

// DisplayCaseResult prints one per-case progress line.
func (s *SimpleUI) DisplayCaseResult(ctx context.Context, name string, outcome m.Outcome, detail string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if outcome == m.Pass {
		s.printf("%s\n", passStyle.Render("[ok] "+name))
		return
	}

	line := fmt.Sprintf("[!!] %s (%s)", name, outcome)
	if detail != "" {
		line += ": " + detail
	}

	s.printf("%s\n", failStyle.Render(line))
}

// DisplayNotice prints an informational line.
func (s *SimpleUI) DisplayNotice(ctx context.Context, message string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", warnStyle.Render(message))
}

// DisplayError reports a non-fatal error.
func (s *SimpleUI) DisplayError(ctx context.Context, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.printf("%s\n", failStyle.Render("error: "+err.Error()))
}

// DisplaySummary renders the per-outcome counts after the run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, counts map[m.Outcome]int, total int, outputRoot m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	if total > 0 && counts[m.Pass] == total {
		s.printf("\n%s\n", passStyle.Render("All tests passed! No mismatches found."))
		return
	}

	s.printf("\n%s", renderSummaryTable(counts, total))
	s.printf("%s\n", warnStyle.Render(fmt.Sprintf("Evidence saved under %s", outputRoot)))
}

func renderSummaryTable(counts map[m.Outcome]int, total int) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Outcome", "Cases"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, outcome := range []m.Outcome{m.Pass, m.OutputMismatch, m.MemoryError, m.Timeout, m.ExecutionError} {
		if counts[outcome] == 0 && outcome != m.Pass {
			continue
		}

		table.Append([]string{outcome.String(), fmt.Sprintf("%d", counts[outcome])})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", total)})
	table.Render()

	return buf.String()
}

// RunReview drives the plain review loop: prompt, read one line, feed it to
// the session, repeat until the session terminates or the context is
// cancelled.
func (s *SimpleUI) RunReview(ctx context.Context, session *domain.ReviewSession) error {
	lines := make(chan string)

	go func() {
		defer close(lines)

		// The send must not outlive the loop below; the blocking read
		// inside Scan itself ends with the process.
		scanner := bufio.NewScanner(s.cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		s.printf("\n%s\n%s\n", infoStyle.Render("Which case would you like to view the differences for?"),
			infoStyle.Render("(Type 'exit' to quit)"))
		s.printf("%s", infoStyle.Render("Enter name: "))

		var (
			line string
			open bool
		)

		select {
		case <-ctx.Done():
			s.printf("\n%s\n", warnStyle.Render("Interrupted. Exiting..."))
			return nil

		case line, open = <-lines:
			if !open {
				return nil
			}
		}

		event, err := session.Handle(line)
		if err != nil {
			return err
		}

		switch event {
		case domain.ReviewExit:
			s.printf("%s\n", passStyle.Render("Exiting..."))
			return nil

		case domain.ReviewEmpty:
			s.printf("%s\n", warnStyle.Render("Please enter a case name."))

		case domain.ReviewUnknown:
			s.printf("%s\n%s\n", failStyle.Render(fmt.Sprintf("'%s' not found in results.", strings.TrimSpace(line))),
				warnStyle.Render("Available cases:"))

			for _, name := range session.Names() {
				s.printf("  - %s\n", name)
			}

		case domain.ReviewOpened:
			s.printf("%s\n", passStyle.Render("Opening comparison viewer..."))
		}
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
