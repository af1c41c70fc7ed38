package cmd

import (
	"github.com/PolarWolf314/vigenere/internal/vigenere"
	"github.com/spf13/cobra"
)

func init() {
	bindTransformFlags(decipherCmd, &decipherFlags)
}

var decipherCmd = &cobra.Command{
	Use:   "decipher [files, directories or globs...]",
	Short: "Reverse cipher with the same key and policy",
	Long: `Deciphers input produced by "vigenere cipher".

Unless --no-marker is given, the deciphered output must begin with the
identifying marker. When it does not, the key or policy is wrong and nothing
is written. Files named with the configured suffix are written back without it.

Examples:
  # Decipher a message
  vigenere decipher -k LEMON -p letters -t XWCNKLXFOPVEFRNHR

  # Decipher notes.txt.vig back to notes.txt
  vigenere decipher --key-file ~/.vigkey notes.txt.vig

  # Decipher every .vig file in the current directory tree
  vigenere decipher -k secret .

  # Decipher to stdout
  vigenere decipher -k secret notes.txt.vig -o -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, vigenere.Decode, &decipherFlags)
	},
}
