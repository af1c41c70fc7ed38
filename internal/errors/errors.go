package errors

import "errors"

// Cipher errors are returned by the engine and the marker convention built on top of it.
var (
	// ErrInvalidKey indicates the key is empty or contains symbols outside the active policy.
	ErrInvalidKey = errors.New("key must be composed only of symbols in the supported alphabet, and non-empty")

	// ErrMarkerMismatch indicates deciphered output did not start with the expected marker.
	ErrMarkerMismatch = errors.New("message was not ciphered with this key and marker")

	// ErrInvalidMarker indicates the configured marker contains symbols the policy would drop.
	ErrInvalidMarker = errors.New("marker contains symbols outside the policy's alphabet")

	// ErrKeyRequired indicates no key was supplied and none could be prompted for.
	ErrKeyRequired = errors.New("a key is required")
)

// Policy errors indicate issues selecting a symbol policy.
var (
	// ErrUnknownPolicy indicates the requested symbol policy does not exist.
	ErrUnknownPolicy = errors.New("unknown symbol policy")
)

// Configuration errors indicate a malformed or unsupported configuration.
var (
	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrInvalidConfigKey indicates the configuration key does not exist.
	ErrInvalidConfigKey = errors.New("unknown configuration key")

	// ErrConfigExists indicates a configuration file is already present.
	ErrConfigExists = errors.New("configuration file already exists")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates the destination file exists and overwriting was not requested.
	ErrOutputExists = errors.New("output file already exists")

	// ErrNoOutputName indicates an output name could not be derived from the input name.
	ErrNoOutputName = errors.New("cannot derive output file name")

	// ErrAmbiguousOutput indicates an explicit output path was given for several inputs.
	ErrAmbiguousOutput = errors.New("an explicit output path requires exactly one input")
)

// History errors indicate issues reading the operation history.
var (
	// ErrNoHistory indicates no history has been recorded yet.
	ErrNoHistory = errors.New("no history recorded")

	// ErrInvalidDateFormat indicates a date filter could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
