package workflows

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/vigenere/internal/configs"
	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/PolarWolf314/vigenere/internal/files"
	"github.com/PolarWolf314/vigenere/internal/history"
	"github.com/PolarWolf314/vigenere/internal/textio"
	"github.com/PolarWolf314/vigenere/internal/vigenere"
)

// Mode identifies where a cipher operation reads its input from.
type Mode string

const (
	// ModeText transforms a literal string.
	ModeText Mode = "text"
	// ModeStream transforms an io.Reader into an io.Writer.
	ModeStream Mode = "stream"
	// ModeFile transforms files resolved from paths and globs.
	ModeFile Mode = "file"
)

// StdoutPath is the OutputPath value meaning "write to Options.Output".
const StdoutPath = "-"

// Options configures the cipher and decipher workflows.
type Options struct {
	// Key is the cipher key text. It is validated against the policy.
	Key string

	// Policy overrides the configured symbol policy when non-empty.
	Policy string

	// Text, when HasText is set, is transformed instead of any stream or file.
	Text    string
	HasText bool

	// Patterns lists files, directories or globs to transform.
	Patterns []string

	// BaseDir resolves relative patterns. Empty means the working directory.
	BaseDir string

	// Input and Output are used in stream mode, and Output in text mode when
	// OutputPath is empty or "-".
	Input  io.Reader
	Output io.Writer

	// OutputPath overrides the derived destination. Only valid for one input.
	OutputPath string

	// NoMarker disables the identifying marker regardless of configuration.
	NoMarker bool

	// NFC composes plaintext to Normalization Form C before ciphering,
	// regardless of configuration. Deciphering never normalizes.
	NFC bool

	// Force overwrites existing output files.
	Force bool

	// DryRun resolves inputs and outputs without writing anything.
	DryRun bool
}

// FileResult describes one transformed file.
type FileResult struct {
	Source  string
	Output  string
	Stats   Stats
	Skipped bool
}

// Stats counts the symbols that moved through one transform.
type Stats struct {
	// In is the number of decoded input symbols, dropped ones included.
	In int
	// Out is the number of symbols written to the output. Ciphered output
	// carries the marker and counts it; deciphered output has it stripped.
	Out int
	// Dropped is the number of input symbols outside the policy's alphabet.
	Dropped int
	// InvalidBytes is the number of undecodable input bytes skipped.
	InvalidBytes int
	// Bytes is the number of input bytes consumed.
	Bytes int
}

func (s *Stats) add(o Stats) {
	s.In += o.In
	s.Out += o.Out
	s.Dropped += o.Dropped
	s.InvalidBytes += o.InvalidBytes
	s.Bytes += o.Bytes
}

// Result contains the outcome of a cipher or decipher operation.
type Result struct {
	Direction vigenere.Direction
	Mode      Mode
	Policy    string
	Marker    bool

	// Text holds the output of text mode when no output path was given.
	Text string

	// OutputPath is the file written in text or stream mode, if any.
	OutputPath string

	Files  []FileResult
	Totals Stats
	DryRun bool
}

// Cipher enciphers text, a stream, or files with the given key.
//
// Returns ErrInvalidKey if the key is empty or outside the policy's alphabet.
// Returns ErrInvalidMarker if the marker cannot survive the policy's filter.
// Returns ErrNoFilesFound if the patterns match nothing.
// Returns ErrOutputExists if a destination exists and Force is not set.
func Cipher(ctx context.Context, opts Options) (*Result, error) {
	return run(ctx, vigenere.Encode, opts)
}

// Decipher reverses Cipher.
//
// In addition to Cipher's errors, returns ErrMarkerMismatch when the marker
// is enabled and the deciphered output does not begin with it. Nothing is
// written in that case.
func Decipher(ctx context.Context, opts Options) (*Result, error) {
	return run(ctx, vigenere.Decode, opts)
}

// session is the resolved state shared by every input of one operation.
type session struct {
	dir     vigenere.Direction
	config  *configs.Config
	engine  *vigenere.Engine
	marker  string
	readOps []textio.ReaderOption
	keyFP   string
}

func newSession(dir vigenere.Direction, opts Options) (*session, error) {
	config, err := configs.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	policyName := config.Cipher.Policy
	if opts.Policy != "" {
		policyName = opts.Policy
	}
	policy, err := vigenere.PolicyByName(policyName)
	if err != nil {
		return nil, err
	}

	if opts.Key == "" {
		return nil, kerrors.ErrKeyRequired
	}
	engine, err := vigenere.NewWithPolicy(policy, opts.Key)
	if err != nil {
		return nil, err
	}

	s := &session{
		dir:    dir,
		config: config,
		engine: engine,
		keyFP:  history.KeyFingerprint(policy.Name(), vigenere.NormalizeKey(policy, opts.Key)),
	}

	if config.Cipher.UseMarker && !opts.NoMarker {
		s.marker = config.MarkerFor(policy)
		if err := checkMarker(policy, s.marker); err != nil {
			return nil, err
		}
	}

	s.readOps = []textio.ReaderOption{textio.WithBufferSize(config.IO.BufferSize)}
	// Ciphertext is never normalized: composing it would change the symbols
	// decipher has to reverse.
	if dir == vigenere.Encode && (opts.NFC || config.IO.Normalize == configs.NormalizeNFC) {
		s.readOps = append(s.readOps, textio.WithNFC())
	}

	return s, nil
}

// checkMarker rejects markers whose symbols would be dropped or folded, since
// such a marker could never be read back verbatim.
func checkMarker(p vigenere.Policy, marker string) error {
	if marker == "" {
		return nil
	}
	for _, r := range marker {
		if !p.InDomain(r) {
			return fmt.Errorf("%w: %q under policy %s", kerrors.ErrInvalidMarker, marker, p.Name())
		}
	}
	return nil
}

func run(ctx context.Context, dir vigenere.Direction, opts Options) (*Result, error) {
	s, err := newSession(dir, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Direction: dir,
		Policy:    s.engine.Policy().Name(),
		Marker:    s.marker != "",
		DryRun:    opts.DryRun,
	}

	switch {
	case opts.HasText:
		result.Mode = ModeText
		err = s.runText(ctx, opts, result)
	case len(opts.Patterns) > 0:
		result.Mode = ModeFile
		err = s.runFiles(ctx, opts, result)
	default:
		result.Mode = ModeStream
		err = s.runStream(ctx, opts, result)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *session) runText(ctx context.Context, opts Options, result *Result) error {
	src := textio.NewReader(strings.NewReader(opts.Text), s.readOps...)

	if opts.OutputPath != "" && opts.OutputPath != StdoutPath {
		result.OutputPath = opts.OutputPath
		if opts.DryRun {
			return nil
		}
		stats, err := s.toFile(ctx, src, opts.OutputPath, opts.Force)
		s.record(ModeText, "", opts.OutputPath, stats, err)
		result.Totals = stats
		return err
	}

	if opts.DryRun {
		return nil
	}

	var b strings.Builder
	stats, err := s.transform(ctx, src, textio.NewWriter(&b, s.config.IO.BatchSize))
	s.record(ModeText, "", "", stats, err)
	if err != nil {
		return err
	}
	result.Text = b.String()
	result.Totals = stats

	if opts.Output != nil {
		if _, err := io.WriteString(opts.Output, result.Text); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func (s *session) runStream(ctx context.Context, opts Options, result *Result) error {
	if opts.Input == nil {
		return fmt.Errorf("no input: provide text, files, or piped data")
	}
	src := textio.NewReader(opts.Input, s.readOps...)

	if opts.OutputPath != "" && opts.OutputPath != StdoutPath {
		result.OutputPath = opts.OutputPath
		if opts.DryRun {
			return nil
		}
		stats, err := s.toFile(ctx, src, opts.OutputPath, opts.Force)
		s.record(ModeStream, "", opts.OutputPath, stats, err)
		result.Totals = stats
		return err
	}

	if opts.DryRun {
		return nil
	}
	if opts.Output == nil {
		return fmt.Errorf("no output writer for stream mode")
	}

	stats, err := s.transform(ctx, src, textio.NewWriter(opts.Output, s.config.IO.BatchSize))
	s.record(ModeStream, "", "", stats, err)
	result.Totals = stats
	return err
}

func (s *session) runFiles(ctx context.Context, opts Options, result *Result) error {
	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	suffix := s.config.IO.Suffix
	inputs, err := files.ResolveFiles(opts.Patterns, baseDir, suffix, s.dir == vigenere.Decode)
	if err != nil {
		return err
	}

	if opts.OutputPath != "" && len(inputs) != 1 {
		return fmt.Errorf("%w: %d inputs matched", kerrors.ErrAmbiguousOutput, len(inputs))
	}

	// Resolve every destination before writing anything.
	outputs := make([]string, len(inputs))
	for i, in := range inputs {
		out, err := s.outputFor(in, opts.OutputPath, baseDir)
		if err != nil {
			return err
		}
		if !opts.Force && !opts.DryRun && out != StdoutPath {
			if _, err := os.Stat(out); err == nil {
				return fmt.Errorf("%w: %s", kerrors.ErrOutputExists, out)
			}
		}
		outputs[i] = out
	}

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		fr := FileResult{Source: in, Output: outputs[i]}
		if opts.DryRun {
			fr.Skipped = true
			result.Files = append(result.Files, fr)
			continue
		}

		stats, err := s.fileToDestination(ctx, in, outputs[i], opts)
		s.record(ModeFile, in, outputs[i], stats, err)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}

		fr.Stats = stats
		result.Files = append(result.Files, fr)
		result.Totals.add(stats)
	}

	return nil
}

func (s *session) outputFor(input, explicit, baseDir string) (string, error) {
	if explicit == StdoutPath {
		return StdoutPath, nil
	}
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(baseDir, explicit)
		}
		return explicit, nil
	}
	if s.dir == vigenere.Encode {
		return files.CipheredName(input, s.config.IO.Suffix), nil
	}
	return files.PlainName(input, s.config.IO.Suffix)
}

func (s *session) fileToDestination(ctx context.Context, input, output string, opts Options) (Stats, error) {
	f, err := os.Open(input)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", kerrors.ErrFileNotFound, err)
	}
	defer f.Close()

	src := textio.NewReader(f, s.readOps...)
	if output == StdoutPath {
		if opts.Output == nil {
			return Stats{}, fmt.Errorf("no output writer for stdout")
		}
		return s.transform(ctx, src, textio.NewWriter(opts.Output, s.config.IO.BatchSize))
	}
	return s.toFile(ctx, src, output, opts.Force)
}

// toFile writes the transform to a temporary file beside output and renames
// it into place, so a failed or rejected run never leaves partial output.
func (s *session) toFile(ctx context.Context, src *textio.Reader, output string, force bool) (Stats, error) {
	if !force {
		if _, err := os.Stat(output); err == nil {
			return Stats{}, fmt.Errorf("%w: %s", kerrors.ErrOutputExists, output)
		}
	}

	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Stats{}, fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".vigenere-*")
	if err != nil {
		return Stats{}, fmt.Errorf("creating output file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	stats, err := s.transform(ctx, src, textio.NewWriter(tmp, s.config.IO.BatchSize))
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing output file: %w", closeErr)
	}
	if err != nil {
		return stats, err
	}

	if s.dir == vigenere.Decode {
		// #nosec G302 -- deciphered files are meant to be edited by the user.
		if err := os.Chmod(tmpName, 0644); err != nil {
			return stats, fmt.Errorf("setting output permissions: %w", err)
		}
	}

	if err := os.Rename(tmpName, output); err != nil {
		return stats, fmt.Errorf("writing %s: %w", output, err)
	}
	committed = true
	return stats, nil
}

// transform runs the engine from src into w, handling the marker.
func (s *session) transform(ctx context.Context, src *textio.Reader, w *textio.Writer) (Stats, error) {
	var in, admitted textio.Counter
	input := in.Wrap(src.Runes())

	var (
		out int
		err error
	)
	if s.dir == vigenere.Encode {
		plain := admitted.Wrap(filterAdmitted(s.engine.Policy(), input))
		seq := s.engine.Cipher(textio.Concat(vigenere.Runes(s.marker), plain))
		out, err = w.WriteSeq(ctx, seq)
	} else {
		seq := admitted.Wrap(s.engine.Decipher(input))
		out, err = s.writeAfterMarker(ctx, seq, w)
	}

	stats := Stats{
		In:           in.Count(),
		Out:          out,
		Dropped:      in.Count() - admitted.Count(),
		InvalidBytes: src.Invalid(),
		Bytes:        src.BytesRead(),
	}

	if err == nil {
		err = src.Err()
	}
	return stats, err
}

// filterAdmitted passes through only the symbols the policy keeps, so they
// can be counted before the engine sees them. The engine would drop the rest
// itself.
func filterAdmitted(p vigenere.Policy, seq iter.Seq[rune]) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for r := range seq {
			if p.Admits(r) && !yield(r) {
				return
			}
		}
	}
}

// writeAfterMarker checks the leading marker symbols of a deciphered
// sequence and writes only what follows them.
func (s *session) writeAfterMarker(ctx context.Context, seq iter.Seq[rune], w *textio.Writer) (int, error) {
	if s.marker == "" {
		return w.WriteSeq(ctx, seq)
	}

	next, stop := iter.Pull(seq)
	defer stop()

	for _, want := range s.marker {
		got, ok := next()
		if !ok || got != want {
			return 0, kerrors.ErrMarkerMismatch
		}
	}

	rest := func(yield func(rune) bool) {
		for {
			r, ok := next()
			if !ok || !yield(r) {
				return
			}
		}
	}
	return w.WriteSeq(ctx, rest)
}

func (s *session) record(mode Mode, source, output string, stats Stats, err error) {
	if !s.config.History.Enabled {
		return
	}

	entry := history.NewEntry(s.dir.String())
	entry.Policy = s.engine.Policy().Name()
	entry.Mode = string(mode)
	entry.Source = source
	entry.Output = output
	entry.SymbolsIn = stats.In
	entry.SymbolsOut = stats.Out
	entry.Invalid = stats.InvalidBytes
	entry.Marker = s.marker != ""
	entry.KeyFP = s.keyFP
	if err != nil {
		entry.Error = err.Error()
	}
	history.Log(entry)
}
