package cmd

import (
	"github.com/PolarWolf314/vigenere/internal/vigenere"
	"github.com/spf13/cobra"
)

func init() {
	bindTransformFlags(cipherCmd, &cipherFlags)
	cipherCmd.Flags().BoolVar(&cipherFlags.nfc, "nfc", false, "compose input to Unicode NFC before ciphering")
}

var cipherCmd = &cobra.Command{
	Use:   "cipher [files, directories or globs...]",
	Short: "Encipher text, stdin, or files with a Vigenère key",
	Long: `Enciphers its input with a repeating key over the configured symbol policy.

Input is taken from --text, from the given files, directories and globs, or
from stdin when neither is given. Symbols outside the policy are dropped and
do not advance the key. Ciphered files are written next to the originals with
the configured suffix (.vig by default).

With --nfc, or io.normalize = "nfc" in the config, the plaintext is composed
to Unicode NFC before ciphering. Deciphering never normalizes.

The key is read from --key, --key-file, the VIGENERE_KEY environment variable,
or a terminal prompt, in that order.

Examples:
  # Encipher a short message
  vigenere cipher -k LEMON -p letters -t "attack at dawn"

  # Encipher a file to notes.txt.vig
  vigenere cipher --key-file ~/.vigkey notes.txt

  # Encipher every markdown file below docs/
  vigenere cipher -k secret "docs/**/*.md"

  # Use it in a pipeline
  cat notes.txt | vigenere cipher -k secret > notes.vig`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, vigenere.Encode, &cipherFlags)
	},
}
