package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"twinpick.dev/pkg/twinpick/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List duplicate pairs",
		Long: `Scan path (default: current directory) and print the duplicate pairs.

` + scanSourceHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, err := newWorkflow(cmd, viper.GetString(deleteModeKey))
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{Scan: scanRequest(args)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
