// Package logger provides leveled logging for vigenere CLI commands.
//
// Verbosity is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags, only WarnfAlways output is shown. Every line goes to
// stderr so that ciphertext streamed to stdout is never interleaved with
// diagnostics.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Processing %d files", count)
//
// Commands create a logger in their PersistentPreRun.
package logger
