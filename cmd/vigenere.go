package cmd

import (
	"errors"

	logger "github.com/PolarWolf314/vigenere/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// RegisterCommands attaches the global flags and every subcommand to root.
func RegisterCommands(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
			Out:     cmd.ErrOrStderr(),
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}

	// Reported errors have already been printed by the command.
	root.SilenceErrors = true
	root.SilenceUsage = true

	root.AddCommand(cipherCmd)
	root.AddCommand(decipherCmd)
	root.AddCommand(policiesCmd)
	root.AddCommand(logCmd)
	root.AddCommand(ConfigCmd)
}

// reportedError marks an error whose message the command already printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	return reportedError{err}
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}
	resetTransformState()
	resetLogCommandState()
	resetPoliciesState()
	ResetConfigState()
}

// resetCobraFlagState clears the Changed marker on every flag of c and its children.
func resetCobraFlagState(c *cobra.Command) {
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, child := range c.Commands() {
		resetCobraFlagState(child)
	}
}
