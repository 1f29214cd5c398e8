package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"twinpick.dev/pkg/twinpick/internal/adapter"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

const scanFixture = `{
  "pairs": [
    {
      "file1": {"path": "%[1]s/a.jpg", "resolution": [800, 600], "file_size": 2048, "mod_time": 1700000000},
      "file2": {"path": "%[1]s/b.jpg", "resolution": [1600, 1200], "file_size": 4096, "mod_time": 1700000100},
      "similarity": 97.5
    }
  ]
}`

// writeScanFixture writes a saved scan naming two real files inside dir.
func writeScanFixture(t *testing.T, dir string) string {
	t.Helper()

	for _, name := range []string{"a.jpg", "b.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644))
	}

	path := filepath.Join(dir, "scan.json")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(scanFixture, filepath.ToSlash(dir))), 0o644))

	return path
}

// newTestRoot builds an isolated root command with fresh flag bindings.
func newTestRoot(t *testing.T, sub ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	root := newRootCmd()
	configureRootFlags(root)
	root.AddCommand(sub...)

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})

	return root, out
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "twinpick", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "saved scan result")
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"review", "list", "clean", "init", "version"})
}

func TestScanRequest(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want m.Path
	}{
		{"no args", nil, "."},
		{"blank arg", []string{"  "}, "."},
		{"explicit path", []string{"/photos"}, "/photos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := scanRequest(tt.args)
			assert.Equal(t, tt.want, req.Path)
			assert.Equal(t, viper.GetString(scanHashKey), req.HashType)
			assert.InDelta(t, viper.GetFloat64(scanThresholdKey), req.Threshold, 0.0001)
		})
	}
}

func TestNewDeleteService(t *testing.T) {
	tests := []struct {
		mode string
		want interface{}
	}{
		{"", &adapter.LocalDeleter{}},
		{"local", &adapter.LocalDeleter{}},
		{"DRY-RUN", &adapter.DryRunDeleter{}},
		{"remote", &adapter.HTTPDeleteClient{}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := newDeleteService(tt.mode)
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}

	_, err := newDeleteService("shred")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown delete mode")
}

func TestNewScanService(t *testing.T) {
	root, _ := newTestRoot(t)
	require.NoError(t, root.ParseFlags([]string{}))
	bindConfigFlags(root.Flags())
	assert.IsType(t, &adapter.HTTPScanClient{}, newScanService())

	root, _ = newTestRoot(t)
	require.NoError(t, root.ParseFlags([]string{"--input", "scan.json"}))
	bindConfigFlags(root.Flags())
	assert.IsType(t, &adapter.FileScanSource{}, newScanService())
}

func TestListCmd_FromInputFile(t *testing.T) {
	dir := t.TempDir()
	input := writeScanFixture(t, dir)

	root, out := newTestRoot(t, newListCmd())
	root.SetArgs([]string{"list", "--input", input, "--log", filepath.Join(dir, "twinpick.log")})

	require.NoError(t, root.Execute())

	output := out.String()
	assert.Contains(t, output, "a.jpg")
	assert.Contains(t, output, "b.jpg")
	assert.Contains(t, output, "97.50%")
}

func TestListCmd_MissingInputFile(t *testing.T) {
	dir := t.TempDir()

	root, _ := newTestRoot(t, newListCmd())
	root.SetArgs([]string{"list", "--input", filepath.Join(dir, "missing.json"), "--log", filepath.Join(dir, "twinpick.log")})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan failed")
}

func TestReviewCmd_WithoutTerminal(t *testing.T) {
	dir := t.TempDir()
	input := writeScanFixture(t, dir)

	root, out := newTestRoot(t, newReviewCmd())
	root.SetArgs([]string{"review", "--input", input, "--log", filepath.Join(dir, "twinpick.log")})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
	assert.Contains(t, out.String(), "a.jpg")
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() { rootCmd = originalRootCmd }()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})
	mockCmd.SetArgs([]string{})

	rootCmd = mockCmd

	Execute()
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TWINPICK_TEST_EXECUTE_FAIL") == "1" {
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(_ *cobra.Command, _ []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd

		Execute()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TWINPICK_TEST_EXECUTE_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(output), "error occurred")
}
