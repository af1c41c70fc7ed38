package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/vigenere/cmd"
	"github.com/PolarWolf314/vigenere/internal/ui"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vigenere",
	Short: "Vigenère - a polyalphabetic cipher for text, streams and files.",
	Long: `Vigenère enciphers and deciphers text with a repeating key.

Each symbol is shifted by the matching key symbol over the range chosen by the
symbol policy, from the 26 Latin letters up to the Basic Multilingual Plane.

Usage:
  vigenere <command> [flags]

Available Commands:
  cipher     Encipher text, stdin, or files
  decipher   Reverse cipher with the same key and policy
  policies   List the symbol policies
  log        View the history of cipher operations
  config     Manage vigenere configuration

Run 'vigenere help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Vigenere", "small", "cyan", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Run 'vigenere --help' to see available commands.")
	},
}

func init() {
	cmd.RegisterCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, ui.Fail(err.Error()))
		}
		os.Exit(1)
	}
}
