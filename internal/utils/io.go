package utils

import (
	"fmt"
	"os"
)

// StdinIsPiped reports whether stdin is connected to a pipe or file rather
// than a terminal.
func StdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// If ModeCharDevice is set, stdin is connected to a terminal.
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// ReadKeyFile reads a key from a file, dropping one trailing newline.
func ReadKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read key file: %w", err)
	}
	return TrimKey(string(data)), nil
}
