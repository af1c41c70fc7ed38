package configs

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// KeyEnvVar names the environment variable that may carry a cipher key.
// The key is read from the environment only and never written to disk.
const KeyEnvVar = "VIGENERE_KEY"

// ApplyEnv overrides fields of config from VIGENERE_* environment variables.
// Unset variables leave the corresponding fields untouched.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// KeyFromEnv returns the key from the environment, if set.
func KeyFromEnv() (string, bool) {
	key, ok := os.LookupEnv(KeyEnvVar)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
