package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vigenere configuration",
	Long: `Provides commands for managing the vigenere configuration file.

Settings are read from the defaults, then the config file, then VIGENERE_*
environment variables. The cipher key is never stored in the config file.

Examples:
  # Write a config file with the defaults
  vigenere config init

  # Show the effective configuration
  vigenere config show

  # Make the letters policy the default
  vigenere config set cipher.policy letters

  # Print where the config file lives
  vigenere config path`,
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetCmd)
	ConfigCmd.AddCommand(configPathCmd)
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	resetConfigInitState()
	resetConfigShowState()
	resetCobraFlagState(ConfigCmd)
}
