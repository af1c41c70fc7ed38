package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/PolarWolf314/vigenere/internal/history"
	"github.com/PolarWolf314/vigenere/internal/ui"
	"github.com/PolarWolf314/vigenere/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logPolicy    string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (cipher, decipher; comma-separated)")
	logCmd.Flags().StringVar(&logPolicy, "policy", "", "filter by policy")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logPolicy = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
	resetCobraFlagState(logCmd)
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the history of cipher operations",
	Long: `Displays the history of cipher and decipher operations.

Keys are never recorded; each entry carries a short fingerprint so runs that
shared a key can be matched up.

Examples:
  vigenere log                         # View full history
  vigenere log -n 10                   # Last 10 entries
  vigenere log --reverse               # Most recent first
  vigenere log --operation decipher    # Filter by operation
  vigenere log --policy letters        # Filter by policy
  vigenere log --since 2024-01-01      # Filter by date
  vigenere log --json                  # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Policy:     logPolicy,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(cmd.Context(), opts)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), formatLogError(err))
		if isLogUnexpectedError(err) {
			return reported(err)
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from history", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	out := cmd.OutOrStdout()
	if len(result.Entries) == 0 {
		fmt.Fprintln(out, "No history entries found matching the filters.")
		return nil
	}

	if logJSON {
		return outputLogJSON(out, result.Entries)
	}

	if logOneline {
		outputLogOneline(out, result.Entries)
		return nil
	}

	outputLogDefault(out, result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoHistory):
		return ui.Info.Sprint("ℹ") + " No history found. Operations are recorded after running cipher or decipher."

	case errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrUnknownPolicy):
		return ui.Fail(err.Error())

	default:
		return ui.Fail("Failed to read history: " + err.Error())
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrNoHistory):
		return false
	default:
		return true
	}
}

func outputLogJSON(w io.Writer, entries []history.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func outputLogOneline(w io.Writer, entries []history.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s %s %s\n", e.Timestamp[:min(10, len(e.Timestamp))], e.Operation, e.Policy,
			workflows.FormatDetailsOneline(e))
	}
}

func outputLogDefault(w io.Writer, entries []history.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Fprintf(w, "%-19s  %-8s  %-8s  %-16s  %s\n", datetime, e.Operation, e.Policy, e.KeyFP, details)
	}
}
