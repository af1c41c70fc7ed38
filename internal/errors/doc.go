// Package errors provides typed error values for the vigenere application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Cipher errors: ErrInvalidKey, ErrMarkerMismatch, ErrInvalidMarker, ErrKeyRequired
//   - Policy errors: ErrUnknownPolicy
//   - Configuration errors: ErrInvalidConfig, ErrInvalidConfigKey, ErrConfigExists
//   - File errors: ErrNoFilesFound, ErrFileNotFound, ErrOutputExists, ErrNoOutputName, ErrAmbiguousOutput
//   - History errors: ErrNoHistory, ErrInvalidDateFormat
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(offsets) == 0 {
//	    return nil, errors.ErrInvalidKey
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Decipher(ctx, opts)
//	if errors.Is(err, kerrors.ErrMarkerMismatch) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: symbol %q at position %d", errors.ErrInvalidKey, r, i)
//
// None of these errors is fatal to the process. The engine itself only ever
// returns ErrInvalidKey and ErrUnknownPolicy; everything else belongs to the
// application built around it.
package errors
