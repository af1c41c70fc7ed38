// Package utils provides shared helpers for the vigenere CLI.
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - TrimKey: strips the trailing newline left by key files
//
// # I/O Utilities
//
//   - StdinIsPiped: reports whether stdin carries data
//   - ReadKeyFile: reads a key from disk
//
// # Terminal Utilities
//
//   - PromptKey: hidden key entry on the terminal
//   - IsTerminal, IsStdoutTerminal, IsTTYAvailable: terminal detection
package utils
