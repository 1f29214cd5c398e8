package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the twinpick version",
		Long:  "Displays the twinpick build version, the Go version and the module path.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("twinpick version: unknown")
				return
			}

			cmd.Println("twinpick\t", info.Main.Version)
			cmd.Println("module\t\t", info.Main.Path)
			cmd.Println("go\t\t", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
