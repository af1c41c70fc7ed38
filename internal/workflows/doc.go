// Package workflows provides high-level orchestration for vigenere commands.
//
// Workflows coordinate the configs, textio, files and history packages around
// the cipher engine. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Resolves the key from flags, files, the environment or a prompt
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else: loading configuration, resolving input
// files and output names, checking the identifying marker, writing output
// atomically and recording history entries.
//
// # Available Workflows
//
//   - Cipher: enciphers text, a stream, or files
//   - Decipher: reverses Cipher, verifying the marker before writing
//   - Log: reads and filters the operation history
//   - ListPolicies: describes the built-in symbol policies
//   - ConfigInit, ConfigShow, ConfigSet: manage the config file
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Decipher(ctx, opts)
//	if errors.Is(err, kerrors.ErrMarkerMismatch) {
//	    // wrong key, or the input was never ciphered
//	}
package workflows
