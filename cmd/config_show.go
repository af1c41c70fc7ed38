package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/vigenere/internal/configs"
	"github.com/PolarWolf314/vigenere/internal/ui"
	"github.com/PolarWolf314/vigenere/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	configShowJSON bool
	configShowTOML bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	configShowCmd.Flags().BoolVar(&configShowTOML, "toml", false, "output in config file format")
	configShowCmd.MarkFlagsMutuallyExclusive("json", "toml")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
	configShowTOML = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration in effect: the defaults, overlaid with the
config file and then any VIGENERE_* environment variables.

Examples:
  vigenere config show
  vigenere config show --json
  vigenere config show --toml > config.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		result, err := workflows.ConfigShow(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Fail("Failed to load config: "+err.Error()))
			return reported(err)
		}
		Logger.Debugf("Config path %s exists=%t", result.Path, result.Exists)

		out := cmd.OutOrStdout()
		if configShowJSON {
			values := make(map[string]string)
			for _, key := range configs.Keys() {
				values[key], _ = result.Config.Get(key)
			}
			data, err := json.MarshalIndent(values, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config to JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if configShowTOML {
			data, err := configs.EncodeTOML(result.Config)
			if err != nil {
				return fmt.Errorf("failed to encode config as TOML: %w", err)
			}
			fmt.Fprint(out, data)
			return nil
		}

		source := ui.Path.Sprint(result.Path)
		if !result.Exists {
			source = ui.Muted.Sprint("defaults, no config file")
		}
		fmt.Fprintln(out, ui.Info.Sprint("Configuration")+" "+source+":")
		fmt.Fprintln(out)

		rows := make([][]string, 0, len(configs.Keys()))
		for _, key := range configs.Keys() {
			value, _ := result.Config.Get(key)
			if value == "" {
				value = "(unset)"
			}
			rows = append(rows, []string{key, value})
		}
		fmt.Fprint(out, ui.Table([]string{"key", "value"}, rows))

		if !result.Exists {
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.Hint("Run "+ui.Code.Sprint("vigenere config init")+" to write these to a file"))
		}
		return nil
	},
}
