package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"twinpick.dev/pkg/twinpick/internal/domain"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

var (
	cleanYesFlag    bool
	cleanDryRunFlag bool
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [path]",
		Short: "Auto-select and delete duplicates without the interactive review",
		Long: `Scan path (default: current directory), mark one file of every eligible
pair with the auto-select rules and delete the marked files.

At least one selection criterion must be enabled, either with flags or in
the select section of the config file.

` + scanSourceHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := viper.GetString(deleteModeKey)
			if cleanDryRunFlag {
				mode = deleteModeDryRun
			}

			workflow, err := newWorkflow(cmd, mode)
			if err != nil {
				return err
			}

			cleanArgs := domain.CleanArgs{
				Scan:  scanRequest(args),
				Rules: ruleConfigFromViper(),
			}

			if !cleanYesFlag && mode != deleteModeDryRun {
				cleanArgs.Confirm = func(items []m.DeletionItem) bool {
					return confirmDeletion(cmd.InOrStdin(), cmd.OutOrStdout(), len(items))
				}
			}

			result, err := workflow.Clean(cmd.Context(), cleanArgs)
			if err != nil {
				return err
			}

			if result.Failed > 0 {
				return fmt.Errorf("%d of %d deletion(s) failed", result.Failed, result.Planned)
			}

			return nil
		},
	}

	configureSelectFlags(cmd)
	cmd.Flags().BoolVarP(&cleanYesFlag, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&cleanDryRunFlag, "dry-run", false, "only report what would be deleted")

	return cmd
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func confirmDeletion(in io.Reader, out io.Writer, count int) bool {
	_, _ = fmt.Fprintf(out, "Delete %d file(s)? This cannot be undone. [y/N] ", count)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}

	return false
}
