package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"twinpick.dev/pkg/twinpick/internal/domain"
)

// reviewCmd represents the review command.
var reviewCmd = newReviewCmd()

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review [path]",
		Short: "Interactively review duplicate pairs",
		Long: `Scan path (default: current directory) and open the interactive review.

` + scanSourceHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, err := newWorkflow(cmd, viper.GetString(deleteModeKey))
			if err != nil {
				return err
			}

			return workflow.Review(cmd.Context(), domain.ReviewArgs{
				Scan:  scanRequest(args),
				Rules: ruleConfigFromViper(),
			})
		},
	}

	configureSelectFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
