package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/PolarWolf314/vigenere/internal/ui"
	"github.com/PolarWolf314/vigenere/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	configInitPolicy string
	configInitForce  bool
)

func init() {
	configInitCmd.Flags().StringVarP(&configInitPolicy, "policy", "p", "", "default symbol policy")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitPolicy = ""
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Creates the config file holding the default settings, so they can be
edited by hand or with "vigenere config set".

Examples:
  vigenere config init
  vigenere config init --policy letters
  vigenere config init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		Logger.Debugf("Flags: policy=%q, force=%t", configInitPolicy, configInitForce)

		out := cmd.OutOrStdout()
		result, err := workflows.ConfigInit(cmd.Context(), workflows.ConfigInitOptions{
			Policy: configInitPolicy,
			Force:  configInitForce,
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrConfigExists) {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Fail(err.Error())+"\n"+
					ui.Hint("Pass "+ui.Flag.Sprint("--force")+" to overwrite it"))
				return reported(err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Fail(err.Error()))
			return reported(err)
		}

		fmt.Fprintln(out, ui.Ok("Configuration written to "+ui.Path.Sprint(result.Path)))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Your settings:")
		fmt.Fprintln(out, "  Policy:  "+ui.Highlight.Sprint(result.Config.Cipher.Policy))
		fmt.Fprintln(out, "  Marker:  "+ui.Highlight.Sprint(fmt.Sprint(result.Config.Cipher.UseMarker)))
		fmt.Fprintln(out, "  Suffix:  "+ui.Highlight.Sprint(result.Config.IO.Suffix))
		return nil
	},
}
