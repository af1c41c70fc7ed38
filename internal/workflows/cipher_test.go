package workflows

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/vigenere/internal/configs"
	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withTempSettings points config and history at a temporary directory and
// returns a separate working directory for files.
func withTempSettings(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	original := configs.AppSettings
	configs.AppSettings = configs.NewSettings(filepath.Join(tempDir, "config"), filepath.Join(tempDir, "data"))
	t.Cleanup(func() {
		configs.AppSettings = original
	})

	workDir := filepath.Join(tempDir, "work")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	return workDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCipher_TextWithMarker(t *testing.T) {
	withTempSettings(t)

	result, err := Cipher(context.Background(), Options{
		Key:     "LEMON",
		Policy:  "letters",
		Text:    "attack at dawn",
		HasText: true,
	})
	require.NoError(t, err)

	// MSQZX under LEMON, then the plaintext continuing the key cycle.
	assert.Equal(t, "XWCNKLXFOPVEFRNHR", result.Text)
	assert.Equal(t, ModeText, result.Mode)
	assert.Equal(t, "letters", result.Policy)
	assert.True(t, result.Marker)
	assert.Equal(t, 14, result.Totals.In)
	assert.Equal(t, 2, result.Totals.Dropped)
	assert.Equal(t, 17, result.Totals.Out)
}

func TestCipher_TextWithoutMarker(t *testing.T) {
	withTempSettings(t)

	result, err := Cipher(context.Background(), Options{
		Key:      "LEMON",
		Policy:   "letters",
		Text:     "ATTACKATDAWN",
		HasText:  true,
		NoMarker: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "LXFOPVEFRNHR", result.Text)
	assert.False(t, result.Marker)
}

func TestDecipher_TextRoundTrip(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()

	for _, policy := range []string{"letters", "ascii", "extended", "unicode"} {
		t.Run(policy, func(t *testing.T) {
			plain := "MEETATNOON"
			if policy != "letters" {
				plain = "Meet at noon, caf\u00e9 \u00fcber alles!"
			}
			if policy == "unicode" {
				plain += " \u65e5\u672c\u8a9e \uFFFD"
			}

			enc, err := Cipher(ctx, Options{Key: "Key", Policy: policy, Text: plain, HasText: true})
			require.NoError(t, err)

			dec, err := Decipher(ctx, Options{Key: "Key", Policy: policy, Text: enc.Text, HasText: true})
			require.NoError(t, err)

			if policy == "ascii" {
				// Latin-1 letters are outside printable ASCII and dropped.
				assert.Equal(t, "Meet at noon, caf ber alles!", dec.Text)
				return
			}
			assert.Equal(t, plain, dec.Text)
		})
	}
}

func TestDecipher_WrongKeyMarkerMismatch(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()

	enc, err := Cipher(ctx, Options{Key: "right", Text: "secret", HasText: true})
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = Decipher(ctx, Options{Key: "wrong", Text: enc.Text, HasText: true, Output: &out})
	assert.ErrorIs(t, err, kerrors.ErrMarkerMismatch)
	assert.Empty(t, out.String())
}

func TestDecipher_UnmarkedInputMismatch(t *testing.T) {
	withTempSettings(t)

	_, err := Decipher(context.Background(), Options{Key: "KEY", Text: "plain text", HasText: true})
	assert.ErrorIs(t, err, kerrors.ErrMarkerMismatch)
}

func TestCipher_KeyErrors(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()

	_, err := Cipher(ctx, Options{Text: "x", HasText: true})
	assert.ErrorIs(t, err, kerrors.ErrKeyRequired)

	_, err = Cipher(ctx, Options{Key: "abc1", Policy: "letters", Text: "x", HasText: true})
	assert.ErrorIs(t, err, kerrors.ErrInvalidKey)

	_, err = Cipher(ctx, Options{Key: "abc", Policy: "rot13", Text: "x", HasText: true})
	assert.ErrorIs(t, err, kerrors.ErrUnknownPolicy)
}

func TestCipher_StreamRoundTrip(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()
	plain := strings.Repeat("The quick brown fox jumps over the lazy dog.\n", 500)

	var enc bytes.Buffer
	result, err := Cipher(ctx, Options{Key: "stream key", Input: strings.NewReader(plain), Output: &enc})
	require.NoError(t, err)
	assert.Equal(t, ModeStream, result.Mode)
	assert.NotEqual(t, plain, enc.String())

	var dec bytes.Buffer
	_, err = Decipher(ctx, Options{Key: "stream key", Input: &enc, Output: &dec})
	require.NoError(t, err)

	// Newlines are below space and are dropped by every policy.
	assert.Equal(t, strings.ReplaceAll(plain, "\n", ""), dec.String())
}

func TestCipher_StreamCountsInvalidBytes(t *testing.T) {
	withTempSettings(t)

	var out bytes.Buffer
	result, err := Cipher(context.Background(), Options{
		Key:    "k",
		Input:  bytes.NewReader([]byte{'a', 0xff, 'b', 0xfe}),
		Output: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Totals.InvalidBytes)
	assert.Equal(t, 2, result.Totals.In)
}

func TestCipher_FileRoundTrip(t *testing.T) {
	workDir := withTempSettings(t)
	ctx := context.Background()

	plainPath := filepath.Join(workDir, "notes.txt")
	writeFile(t, plainPath, "Dear diary, today I learned Go.")

	enc, err := Cipher(ctx, Options{Key: "diary", Patterns: []string{"notes.txt"}, BaseDir: workDir})
	require.NoError(t, err)
	require.Len(t, enc.Files, 1)
	assert.Equal(t, plainPath+".vig", enc.Files[0].Output)
	assert.Equal(t, "Dear diary, today I learned Go.", readFile(t, plainPath))

	require.NoError(t, os.Remove(plainPath))

	dec, err := Decipher(ctx, Options{Key: "diary", Patterns: []string{"."}, BaseDir: workDir})
	require.NoError(t, err)
	require.Len(t, dec.Files, 1)
	assert.Equal(t, plainPath, dec.Files[0].Output)
	assert.Equal(t, "Dear diary, today I learned Go.", readFile(t, plainPath))
}

func TestCipher_FileRefusesOverwrite(t *testing.T) {
	workDir := withTempSettings(t)
	ctx := context.Background()

	writeFile(t, filepath.Join(workDir, "a.txt"), "first")
	writeFile(t, filepath.Join(workDir, "a.txt.vig"), "existing")

	_, err := Cipher(ctx, Options{Key: "k", Patterns: []string{"a.txt"}, BaseDir: workDir})
	assert.ErrorIs(t, err, kerrors.ErrOutputExists)
	assert.Equal(t, "existing", readFile(t, filepath.Join(workDir, "a.txt.vig")))

	_, err = Cipher(ctx, Options{Key: "k", Patterns: []string{"a.txt"}, BaseDir: workDir, Force: true})
	require.NoError(t, err)
	assert.NotEqual(t, "existing", readFile(t, filepath.Join(workDir, "a.txt.vig")))
}

func TestDecipher_FileMismatchLeavesNoOutput(t *testing.T) {
	workDir := withTempSettings(t)
	ctx := context.Background()

	writeFile(t, filepath.Join(workDir, "a.txt"), "hello")
	_, err := Cipher(ctx, Options{Key: "right", Patterns: []string{"a.txt"}, BaseDir: workDir})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(workDir, "a.txt")))

	_, err = Decipher(ctx, Options{Key: "wrong", Patterns: []string{"a.txt.vig"}, BaseDir: workDir})
	assert.ErrorIs(t, err, kerrors.ErrMarkerMismatch)

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the ciphered file should remain")
	assert.Equal(t, "a.txt.vig", entries[0].Name())
}

func TestCipher_GlobAndDryRun(t *testing.T) {
	workDir := withTempSettings(t)

	writeFile(t, filepath.Join(workDir, "docs", "one.md"), "one")
	writeFile(t, filepath.Join(workDir, "docs", "nested", "two.md"), "two")
	writeFile(t, filepath.Join(workDir, "docs", "skip.txt"), "skip")

	result, err := Cipher(context.Background(), Options{
		Key:      "k",
		Patterns: []string{"docs/**/*.md"},
		BaseDir:  workDir,
		DryRun:   true,
	})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	require.Len(t, result.Files, 2)
	for _, f := range result.Files {
		assert.True(t, f.Skipped)
		_, statErr := os.Stat(f.Output)
		assert.True(t, os.IsNotExist(statErr), "dry run wrote %s", f.Output)
	}
}

func TestCipher_OutputPathNeedsSingleInput(t *testing.T) {
	workDir := withTempSettings(t)

	writeFile(t, filepath.Join(workDir, "a.txt"), "a")
	writeFile(t, filepath.Join(workDir, "b.txt"), "b")

	_, err := Cipher(context.Background(), Options{
		Key:        "k",
		Patterns:   []string{"a.txt", "b.txt"},
		BaseDir:    workDir,
		OutputPath: "out.vig",
	})
	assert.ErrorIs(t, err, kerrors.ErrAmbiguousOutput)
}

func TestCipher_TextToOutputPath(t *testing.T) {
	workDir := withTempSettings(t)
	out := filepath.Join(workDir, "msg.vig")

	result, err := Cipher(context.Background(), Options{Key: "k", Text: "hi", HasText: true, OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, out, result.OutputPath)
	assert.Empty(t, result.Text)

	dec, err := Decipher(context.Background(), Options{Key: "k", Text: readFile(t, out), HasText: true})
	require.NoError(t, err)
	assert.Equal(t, "hi", dec.Text)
}

func TestCipher_ConfiguredMarker(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()

	_, err := ConfigSet(ctx, "cipher.marker", "##")
	require.NoError(t, err)

	enc, err := Cipher(ctx, Options{Key: "k", Text: "x", HasText: true})
	require.NoError(t, err)
	assert.Len(t, []rune(enc.Text), 3)

	dec, err := Decipher(ctx, Options{Key: "k", Text: enc.Text, HasText: true})
	require.NoError(t, err)
	assert.Equal(t, "x", dec.Text)
}

func TestCipher_InvalidMarkerForPolicy(t *testing.T) {
	withTempSettings(t)

	// The default marker holds symbols outside A-Z, but letters carries its own.
	_, err := Cipher(context.Background(), Options{Key: "k", Policy: "letters", Text: "x", HasText: true})
	require.NoError(t, err)

	_, err = ConfigSet(context.Background(), "cipher.marker", "M%S")
	require.NoError(t, err)
	_, err = Cipher(context.Background(), Options{Key: "k", Policy: "letters", Text: "x", HasText: true})
	assert.ErrorIs(t, err, kerrors.ErrInvalidMarker)
}

func TestCipher_RecordsHistory(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()

	_, err := Cipher(ctx, Options{Key: "hunter2", Text: "abc", HasText: true})
	require.NoError(t, err)

	logResult, err := Log(ctx, LogOptions{})
	require.NoError(t, err)
	require.Len(t, logResult.Entries, 1)

	e := logResult.Entries[0]
	assert.Equal(t, "cipher", e.Operation)
	assert.Equal(t, "unicode", e.Policy)
	assert.Equal(t, "text", e.Mode)
	assert.Equal(t, 3, e.SymbolsIn)
	assert.True(t, e.Marker)
	assert.NotEmpty(t, e.KeyFP)

	data := readFile(t, configs.AppSettings.HistoryPath)
	assert.NotContains(t, data, "hunter2")
}

func TestCipher_HistoryDisabled(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()

	_, err := ConfigSet(ctx, "history.enabled", "false")
	require.NoError(t, err)

	_, err = Cipher(ctx, Options{Key: "k", Text: "abc", HasText: true})
	require.NoError(t, err)

	_, err = Log(ctx, LogOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNoHistory)
}

func TestCipher_NFCConfigRoundTrip(t *testing.T) {
	withTempSettings(t)
	t.Setenv("VIGENERE_NORMALIZE", "nfc")
	ctx := context.Background()

	// Under key "A" the modifier letter U+02E0 ciphers to the combining
	// acute U+0301, so the ciphertext holds a base-plus-combining pair.
	plain := "D\u02e0"

	for _, noMarker := range []bool{true, false} {
		enc, err := Cipher(ctx, Options{Key: "A", Policy: "unicode", Text: plain, HasText: true, NoMarker: noMarker})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(enc.Text, "e\u0301"), "ciphertext %q", enc.Text)

		dec, err := Decipher(ctx, Options{Key: "A", Policy: "unicode", Text: enc.Text, HasText: true, NoMarker: noMarker})
		require.NoError(t, err)
		assert.Equal(t, plain, dec.Text, "no-marker=%t", noMarker)
	}
}

func TestCipher_NFCComposesPlaintextOnly(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()

	enc, err := Cipher(ctx, Options{Key: "k", Text: "e\u0301", HasText: true, NFC: true})
	require.NoError(t, err)
	assert.Equal(t, 1, enc.Totals.In)

	// NFC on decipher is ignored; the composed form comes back.
	dec, err := Decipher(ctx, Options{Key: "k", Text: enc.Text, HasText: true, NFC: true})
	require.NoError(t, err)
	assert.Equal(t, "\u00e9", dec.Text)
}

func TestCipher_OutCountsWrittenSymbols(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()

	enc, err := Cipher(ctx, Options{Key: "LEMON", Policy: "letters", Text: "attack", HasText: true})
	require.NoError(t, err)
	assert.Equal(t, 11, enc.Totals.Out, "marker and plaintext")

	dec, err := Decipher(ctx, Options{Key: "LEMON", Policy: "letters", Text: enc.Text, HasText: true})
	require.NoError(t, err)
	assert.Equal(t, "ATTACK", dec.Text)
	assert.Equal(t, 6, dec.Totals.Out, "marker stripped")
	assert.Equal(t, 11, dec.Totals.In)
}

func TestCipher_KeyFingerprintIgnoresSkippedSpaces(t *testing.T) {
	withTempSettings(t)
	ctx := context.Background()

	for _, key := range []string{"K E Y", "key", "KEYS"} {
		_, err := Cipher(ctx, Options{Key: key, Policy: "letters", Text: "abc", HasText: true})
		require.NoError(t, err)
	}

	logResult, err := Log(ctx, LogOptions{})
	require.NoError(t, err)
	require.Len(t, logResult.Entries, 3)

	entries := logResult.Entries
	assert.Equal(t, entries[0].KeyFP, entries[1].KeyFP)
	assert.NotEqual(t, entries[0].KeyFP, entries[2].KeyFP)
}
