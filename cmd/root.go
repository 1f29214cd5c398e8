// Package cmd provides the root command and CLI setup for twinpick.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"twinpick.dev/pkg/twinpick/internal/adapter"
	"twinpick.dev/pkg/twinpick/internal/controller"
	"twinpick.dev/pkg/twinpick/internal/domain"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

// logFileFlag and verboseFlag configure logging for every command.
var (
	logFileFlag string
	verboseFlag bool
)

func init() {
	configureRootFlags(rootCmd)
}

const scanSourceHelp = `Pairs come from the scan service at --scan-url, or from a saved scan
result passed with --input (JSON as returned by the service, or YAML).`

const rootLongDescription = `twinpick reviews duplicate image pairs found by a similarity scanner.
It lets you ignore pairs, mark the copy to delete by hand or with
auto-select rules, and deletes files while keeping every pair that shares
a file consistent.

` + scanSourceHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "twinpick",
		Short: "Duplicate image review tool",
		Long:  rootLongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			bindConfigFlags(cmd.Flags())
			configureLogger(logFileFlag, verboseFlag)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP(inputFlagName, "i", "", "read pairs from a saved scan result instead of the scan service")
	flags.String(scanURLFlagName, defaultScanURL, "base URL of the scan service")
	flags.String(hashFlagName, defaultHashType, "hash algorithm: phash, ahash or dhash")
	flags.Float64P(thresholdFlagName, "t", defaultThreshold, "minimum similarity percentage reported by the scan")
	flags.String(deleteModeFlag, defaultDeleteMode, "how files are deleted: local, remote or dry-run")
	flags.String(deleteURLFlagName, "", "base URL of the delete service (defaults to --scan-url)")
	flags.Float64(rateLimitFlagName, 0, "maximum remote delete requests per second (0 = unlimited)")
	flags.StringVar(&logFileFlag, logFlagName, "", "log file path")
	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// configureSelectFlags adds the auto-select criteria flags to cmd.
func configureSelectFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.Bool(smallerResolutionFlagName, false, "prefer deleting the smaller resolution")
	flags.Bool(smallerSizeFlagName, false, "prefer deleting the smaller file")
	flags.Bool(olderFlagName, false, "prefer deleting the older file")
	flags.Float64(minSimilarityFlagName, 0, "only auto-select pairs at or above this similarity")
	flags.Bool(sameFilenameFlagName, false, "only auto-select pairs whose file names match")
}

// configFlagKeys maps every config-backed flag to its Viper key.
var configFlagKeys = map[string]string{
	inputFlagName:             scanInputKey,
	scanURLFlagName:           scanURLKey,
	hashFlagName:              scanHashKey,
	thresholdFlagName:         scanThresholdKey,
	deleteModeFlag:            deleteModeKey,
	deleteURLFlagName:         deleteURLKey,
	rateLimitFlagName:         deleteRateKey,
	smallerResolutionFlagName: selectResolutionKey,
	smallerSizeFlagName:       selectSizeKey,
	olderFlagName:             selectOlderKey,
	minSimilarityFlagName:     selectMinSimKey,
	sameFilenameFlagName:      selectSameNameKey,
}

// bindConfigFlags binds the flags of the command being run. Several commands
// declare the same select flags and Viper keeps one binding per key, so
// binding happens at run time instead of at construction.
func bindConfigFlags(flags *pflag.FlagSet) {
	for name, key := range configFlagKeys {
		if flag := flags.Lookup(name); flag != nil {
			bindFlagToConfig(flag, key)
		}
	}
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// scanRequest builds the scan request for the optional directory argument.
func scanRequest(args []string) m.ScanRequest {
	path := "."
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		path = args[0]
	}

	return m.ScanRequest{
		Path:      m.Path(path),
		HashType:  viper.GetString(scanHashKey),
		Threshold: viper.GetFloat64(scanThresholdKey),
	}
}

func newScanService() adapter.ScanService {
	if input := strings.TrimSpace(viper.GetString(scanInputKey)); input != "" {
		return adapter.NewFileScanSource(m.Path(input))
	}

	return adapter.NewHTTPScanClient(viper.GetString(scanURLKey))
}

func newDeleteService(mode string) (adapter.DeleteService, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case deleteModeLocal, "":
		return adapter.NewLocalDeleter(), nil
	case deleteModeDryRun:
		return adapter.NewDryRunDeleter(), nil
	case deleteModeRemote:
		url := viper.GetString(deleteURLKey)
		if strings.TrimSpace(url) == "" {
			url = viper.GetString(scanURLKey)
		}

		return adapter.NewHTTPDeleteClient(url, adapter.WithRateLimit(viper.GetFloat64(deleteRateKey))), nil
	}

	return nil, fmt.Errorf("unknown delete mode %q (want %s, %s or %s)",
		mode, deleteModeLocal, deleteModeRemote, deleteModeDryRun)
}

// newWorkflow assembles the workflow for cmd from the resolved configuration.
func newWorkflow(cmd *cobra.Command, deleteMode string) (domain.Workflow, error) {
	deleter, err := newDeleteService(deleteMode)
	if err != nil {
		return nil, err
	}

	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))

	return domain.NewWorkflow(newScanService(), deleter, ui), nil
}
