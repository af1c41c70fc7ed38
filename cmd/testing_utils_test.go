package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/vigenere/internal/configs"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points config and history at a temporary directory,
// clears the key variable and resets command state. It returns a directory
// for input and output files.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	originalSettings := configs.AppSettings
	configs.AppSettings = configs.NewSettings(filepath.Join(tempDir, "config"), filepath.Join(tempDir, "data"))
	t.Cleanup(func() {
		configs.AppSettings = originalSettings
		ResetGlobalState()
	})

	t.Setenv(configs.KeyEnvVar, "")
	ResetGlobalState()

	workDir := filepath.Join(tempDir, "work")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work directory: %v", err)
	}
	return workDir
}

// cliResult holds what one CLI invocation wrote.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI runs a fresh root command with args and optional stdin.
func runCLI(t *testing.T, stdin io.Reader, args ...string) cliResult {
	t.Helper()
	ResetGlobalState()

	var stdout, stderr bytes.Buffer
	root := &cobra.Command{
		Use:   "vigenere",
		Short: "Vigenère cipher for text, streams and files",
	}
	RegisterCommands(root)

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if stdin != nil {
		root.SetIn(stdin)
	} else {
		root.SetIn(bytes.NewReader(nil))
	}
	root.SetArgs(args)

	err := root.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
