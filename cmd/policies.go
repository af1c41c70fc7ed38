package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/PolarWolf314/vigenere/internal/ui"
	"github.com/PolarWolf314/vigenere/internal/workflows"
	"github.com/spf13/cobra"
)

var policiesJSON bool

func init() {
	policiesCmd.Flags().BoolVar(&policiesJSON, "json", false, "output as JSON array")
}

func resetPoliciesState() {
	policiesJSON = false
	resetCobraFlagState(policiesCmd)
}

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the symbol policies",
	Long: `Lists the built-in symbol policies.

A policy decides which symbols take part in the cipher and the size of the
range they are shifted over. Symbols outside the policy are dropped from the
input. The active policy is marked with *.

Examples:
  vigenere policies
  vigenere policies --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting policies command")
		infos := workflows.ListPolicies()

		if policiesJSON {
			data, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal policies to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		rows := make([][]string, 0, len(infos))
		for _, p := range infos {
			name := p.Name
			if p.Active {
				name += " *"
			}
			rows = append(rows, []string{name, strconv.Itoa(p.RangeLen), p.Spans, p.Description})
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.Table([]string{"policy", "size", "ranges", "description"}, rows))
		return nil
	},
}
