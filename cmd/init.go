package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const configHeader = "twinpick configuration. TWINPICK_* environment variables and flags override these values."

type configEntry struct {
	key     string
	comment string
}

type configSection struct {
	name    string
	comment string
	entries []configEntry
}

// configLayout is the order and annotation of the keys written by init.
var configLayout = []configSection{
	{
		name:    "scan",
		comment: "Where duplicate pairs come from.",
		entries: []configEntry{
			{scanURLKey, "base URL of the scan service"},
			{scanHashKey, "phash, ahash or dhash"},
			{scanThresholdKey, "minimum similarity percentage reported by the scan"},
			{scanInputKey, "saved scan result (JSON or YAML) read instead of the service"},
		},
	},
	{
		name:    "delete",
		comment: "How marked files are deleted.",
		entries: []configEntry{
			{deleteModeKey, "local, remote or dry-run"},
			{deleteURLKey, "delete service URL, empty means scan.url"},
			{deleteRateKey, "remote requests per second, 0 means unlimited"},
		},
	},
	{
		name: "select",
		comment: "Auto-select criteria. min_similarity and same_filename only filter pairs;\n" +
			"the side to delete comes from the smaller_* and older_mod_time preferences.",
		entries: []configEntry{
			{selectResolutionKey, "delete the smaller resolution"},
			{selectSizeKey, "delete the smaller file"},
			{selectOlderKey, "delete the older file"},
			{selectMinSimKey, "skip pairs below this similarity, 0 disables the filter"},
			{selectSameNameKey, "skip pairs whose file names differ"},
		},
	},
	{
		name:    "log",
		comment: "Rotating log file.",
		entries: []configEntry{
			{logFilenameKey, ""},
			{logLevelKey, "slog level: -4 debug, 0 info, 4 warn, 8 error"},
			{logVerboseKey, "force debug level"},
			{logMaxSizeKey, "megabytes before rotation"},
			{logMaxBackupsKey, ""},
			{logMaxAgeKey, "days"},
			{logCompressKey, ""},
		},
	},
}

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate an annotated twinpick.yaml configuration file",
		Long: `Create a twinpick.yaml in the current working directory with the scan,
delete, select and log settings currently in effect. Select flags given to
init are written into the file, so

  twinpick init --smaller-size --min-similarity 95

stores that auto-select preset. An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			contents, err := renderConfig()
			if err != nil {
				return fmt.Errorf("failed to render config file: %w", err)
			}

			if err := writeNewFile(targetPath, contents); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", targetPath)

			return nil
		},
	}

	configureSelectFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// renderConfig encodes the current settings in configLayout order.
func renderConfig() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	version, err := valueNode(configVersionKey, "")
	if err != nil {
		return nil, err
	}

	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: configVersionKey, HeadComment: configHeader},
		version,
	)

	for _, section := range configLayout {
		body := &yaml.Node{Kind: yaml.MappingNode}

		for _, entry := range section.entries {
			value, err := valueNode(entry.key, entry.comment)
			if err != nil {
				return nil, err
			}

			name := strings.TrimPrefix(entry.key, section.name+".")
			body.Content = append(body.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, value)
		}

		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: section.name, HeadComment: section.comment},
			body,
		)
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(root); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func valueNode(key, comment string) (*yaml.Node, error) {
	value := &yaml.Node{}
	if err := value.Encode(viper.Get(key)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}

	value.LineComment = comment

	return value, nil
}

func writeNewFile(path string, contents []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", path)
		}

		return err
	}

	if _, err := file.Write(contents); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}
