package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/vigenere/internal/configs"
	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/PolarWolf314/vigenere/internal/ui"
	"github.com/PolarWolf314/vigenere/internal/utils"
	"github.com/PolarWolf314/vigenere/internal/vigenere"
	"github.com/PolarWolf314/vigenere/internal/workflows"
	"github.com/spf13/cobra"
)

// transformFlags holds the flags shared by cipher and decipher.
type transformFlags struct {
	key      string
	keyFile  string
	policy   string
	text     string
	out      string
	force    bool
	noMarker bool
	dryRun   bool
	nfc      bool
}

var (
	cipherFlags   transformFlags
	decipherFlags transformFlags
)

func bindTransformFlags(c *cobra.Command, f *transformFlags) {
	c.Flags().StringVarP(&f.key, "key", "k", "", "cipher key (prefer --key-file or "+configs.KeyEnvVar+")")
	c.Flags().StringVar(&f.keyFile, "key-file", "", "read the key from a file")
	c.Flags().StringVarP(&f.policy, "policy", "p", "", "symbol policy: "+strings.Join(vigenere.PolicyNames(), ", "))
	c.Flags().StringVarP(&f.text, "text", "t", "", "transform this text instead of files or stdin")
	c.Flags().StringVarP(&f.out, "out", "o", "", "output path, or - for stdout")
	c.Flags().BoolVarP(&f.force, "force", "f", false, "overwrite existing output files")
	c.Flags().BoolVar(&f.noMarker, "no-marker", false, "do not write or expect the identifying marker")
	c.Flags().BoolVar(&f.dryRun, "dry-run", false, "show what would be written without writing")
}

// resetTransformState resets the cipher and decipher flags for testing.
func resetTransformState() {
	cipherFlags = transformFlags{}
	decipherFlags = transformFlags{}
	resetCobraFlagState(cipherCmd)
	resetCobraFlagState(decipherCmd)
}

// resolveKey picks the key from, in order, --key, --key-file, the
// environment, and an interactive prompt.
func resolveKey(f *transformFlags) (string, error) {
	if f.key != "" {
		Logger.Debugf("Using key from --key")
		return f.key, nil
	}
	if f.keyFile != "" {
		Logger.Debugf("Reading key from %s", f.keyFile)
		return utils.ReadKeyFile(f.keyFile)
	}
	if key, ok := configs.KeyFromEnv(); ok {
		Logger.Debugf("Using key from %s", configs.KeyEnvVar)
		return key, nil
	}
	if utils.IsTTYAvailable() {
		Logger.Debugf("Prompting for key")
		return utils.PromptKey("Key: ")
	}
	return "", kerrors.ErrKeyRequired
}

func runTransform(cmd *cobra.Command, args []string, dir vigenere.Direction, f *transformFlags) error {
	Logger.Infof("Starting %s command", dir)
	Logger.Debugf("Flags: policy=%q, text=%t, out=%q, force=%t, no-marker=%t, dry-run=%t, nfc=%t",
		f.policy, cmd.Flags().Changed("text"), f.out, f.force, f.noMarker, f.dryRun, f.nfc)

	stderr := cmd.ErrOrStderr()

	key, err := resolveKey(f)
	if err != nil {
		fmt.Fprintln(stderr, formatTransformError(dir, err))
		return reported(err)
	}

	opts := workflows.Options{
		Key:        key,
		Policy:     f.policy,
		Patterns:   args,
		OutputPath: f.out,
		NoMarker:   f.noMarker,
		NFC:        f.nfc,
		Force:      f.force,
		DryRun:     f.dryRun,
	}

	transform := workflows.Cipher
	if dir == vigenere.Decode {
		transform = workflows.Decipher
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case cmd.Flags().Changed("text"):
		opts.Text = f.text
		opts.HasText = true
		return runTextTransform(ctx, cmd, dir, opts, transform)
	case len(args) > 0:
		return runFileTransform(ctx, cmd, dir, opts, transform)
	default:
		opts.Input = cmd.InOrStdin()
		opts.Output = cmd.OutOrStdout()
		if opts.Input == os.Stdin && !utils.StdinIsPiped() {
			fmt.Fprintln(stderr, ui.Info.Sprint("ℹ")+" Reading from the terminal, finish with Ctrl-D")
		}

		result, err := transform(ctx, opts)
		if err != nil {
			fmt.Fprintln(stderr, formatTransformError(dir, err))
			return reported(err)
		}
		logTotals(result)

		switch {
		case result.OutputPath != "":
			fmt.Fprintln(stderr, ui.Ok("Wrote "+ui.Path.Sprint(result.OutputPath)))
		case opts.Output == os.Stdout && utils.IsStdoutTerminal():
			// Stream output carries no trailing newline of its own.
			fmt.Fprintln(stderr)
		}
		return nil
	}
}

func runTextTransform(ctx context.Context, cmd *cobra.Command, dir vigenere.Direction, opts workflows.Options,
	transform func(context.Context, workflows.Options) (*workflows.Result, error)) error {
	result, err := transform(ctx, opts)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), formatTransformError(dir, err))
		return reported(err)
	}
	logTotals(result)

	switch {
	case result.DryRun:
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Info.Sprint("ℹ")+" Dry run: nothing written")
	case result.OutputPath != "":
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Ok("Wrote "+ui.Path.Sprint(result.OutputPath)))
	default:
		// The trailing newline is below space and dropped on the way back in.
		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	}
	return nil
}

func runFileTransform(ctx context.Context, cmd *cobra.Command, dir vigenere.Direction, opts workflows.Options,
	transform func(context.Context, workflows.Options) (*workflows.Result, error)) error {
	verb := "Ciphering"
	if dir == vigenere.Decode {
		verb = "Deciphering"
	}
	opts.Output = cmd.OutOrStdout()

	s, cleanup := startSpinner(cmd.ErrOrStderr(), verb+" files...")
	defer cleanup()

	result, err := transform(ctx, opts)
	if err != nil {
		s.FinalMSG = formatTransformError(dir, err)
		return reported(err)
	}
	logTotals(result)

	var outputs []string
	for _, fr := range result.Files {
		if fr.Output != workflows.StdoutPath {
			outputs = append(outputs, fr.Output)
		}
	}

	if result.DryRun {
		s.FinalMSG = ui.Info.Sprint("ℹ") + " Dry run: " + fmt.Sprint(len(result.Files)) + " file(s) would be written:" +
			utils.FormatPaths(outputs)
		return nil
	}

	if len(outputs) == 0 {
		s.FinalMSG = ""
		return nil
	}

	past := "ciphered"
	if dir == vigenere.Decode {
		past = "deciphered"
	}
	msg := ui.Ok(fmt.Sprintf("%d file(s) %s successfully!", len(outputs), past)) + "\n" +
		"The following files were written: " + utils.FormatPaths(outputs)
	if dir == vigenere.Encode {
		msg += ui.Hint("Keep your key safe; it is needed to run " + ui.Code.Sprint("vigenere decipher"))
	}
	s.FinalMSG = msg
	return nil
}

func logTotals(result *workflows.Result) {
	t := result.Totals
	Logger.Infof("%s (%s, %s policy): %d symbols in, %d out, %d dropped, %d invalid bytes",
		result.Direction, result.Mode, result.Policy, t.In, t.Out, t.Dropped, t.InvalidBytes)
	Logger.Debugf("Read %d bytes", t.Bytes)
	if t.Dropped > 0 {
		Logger.Warnf("%d symbol(s) outside the %s policy were dropped", t.Dropped, result.Policy)
	}
	if t.InvalidBytes > 0 {
		Logger.WarnfAlways("%d invalid UTF-8 byte(s) were skipped", t.InvalidBytes)
	}
}

// formatTransformError formats a cipher or decipher error for display.
func formatTransformError(dir vigenere.Direction, err error) string {
	switch {
	case errors.Is(err, kerrors.ErrKeyRequired):
		return ui.Fail("No key given") + "\n" +
			ui.Hint("Pass "+ui.Flag.Sprint("--key")+" or "+ui.Flag.Sprint("--key-file")+", or set "+ui.Code.Sprint(configs.KeyEnvVar))

	case errors.Is(err, kerrors.ErrInvalidKey):
		return ui.Fail(err.Error()) + "\n" +
			ui.Hint("Run "+ui.Code.Sprint("vigenere policies")+" to see which symbols each policy accepts")

	case errors.Is(err, kerrors.ErrUnknownPolicy):
		return ui.Fail(err.Error()) + "\n" +
			ui.Hint("Available policies: "+strings.Join(vigenere.PolicyNames(), ", "))

	case errors.Is(err, kerrors.ErrMarkerMismatch):
		return ui.Fail("The input does not start with the expected marker") + "\n" +
			ui.Hint("Check the key and policy, or pass "+ui.Flag.Sprint("--no-marker")+" if the input was ciphered without one")

	case errors.Is(err, kerrors.ErrInvalidMarker):
		return ui.Fail(err.Error()) + "\n" +
			ui.Hint("Choose a marker made of symbols the policy keeps, e.g. "+ui.Code.Sprint("vigenere config set cipher.marker \"\""))

	case errors.Is(err, kerrors.ErrOutputExists):
		return ui.Fail(err.Error()) + "\n" +
			ui.Hint("Pass "+ui.Flag.Sprint("--force")+" to overwrite")

	case errors.Is(err, kerrors.ErrNoFilesFound):
		suffix := ".vig"
		if config, loadErr := configs.Load(); loadErr == nil {
			suffix = config.IO.Suffix
		}
		if dir == vigenere.Decode {
			return ui.Fail("No " + ui.Path.Sprint("*"+suffix) + " files found")
		}
		return ui.Fail("No files found to cipher")

	case errors.Is(err, kerrors.ErrFileNotFound),
		errors.Is(err, kerrors.ErrAmbiguousOutput),
		errors.Is(err, kerrors.ErrNoOutputName),
		errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Fail(err.Error())

	default:
		return ui.Fail(fmt.Sprintf("Failed to %s: %v", dir, err))
	}
}
