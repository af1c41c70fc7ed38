package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PolarWolf314/vigenere/internal/configs"
	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/PolarWolf314/vigenere/internal/ui"
	"github.com/PolarWolf314/vigenere/internal/workflows"
	"github.com/spf13/cobra"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration setting",
	Long: `Sets one dotted key in the config file, creating the file if needed.

Keys:
  ` + strings.Join(configs.Keys(), "\n  ") + `

Examples:
  vigenere config set cipher.policy letters
  vigenere config set cipher.use_marker false
  vigenere config set io.suffix .enc`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config set command")
		key, value := args[0], args[1]

		result, err := workflows.ConfigSet(cmd.Context(), key, value)
		if err != nil {
			msg := ui.Fail(err.Error())
			if errors.Is(err, kerrors.ErrInvalidConfigKey) {
				msg += "\n" + ui.Hint("Valid keys: "+strings.Join(configs.Keys(), ", "))
			}
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
			return reported(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Ok(fmt.Sprintf("%s changed from %s to %s",
			ui.Code.Sprint(result.Key), ui.Highlight.Sprint(result.OldValue), ui.Highlight.Sprint(result.NewValue))))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configs.AppSettings.ConfigPath)
		return nil
	},
}
