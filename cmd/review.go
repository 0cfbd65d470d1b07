package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"unic.dev/pkg/unic/internal/domain"
	m "unic.dev/pkg/unic/internal/model"
)

// reviewCmd represents the review command.
var reviewCmd = newReviewCmd()

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Reopen the review session for a previous run",
		Long: `Reload the run manifest from the results directory and re-enter the
interactive review session without re-running any targets.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return workflow.Review(ctx, domain.ReviewArgs{
				OutputDir: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
