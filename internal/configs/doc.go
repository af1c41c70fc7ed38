// Package configs manages configuration for the vigenere CLI.
//
// Configuration is stored in TOML format at:
//
//	$XDG_CONFIG_HOME/vigenere/config.toml
//
// with three sections:
//
//   - [cipher]: symbol policy, marker override, whether the marker is used
//   - [io]: write batch size, read chunk size, output suffix, normalization
//   - [history]: whether operations are recorded
//
// # Precedence
//
// Values are resolved in order, later sources winning:
//
//  1. Built-in defaults (Default)
//  2. The config file, key by key
//  3. VIGENERE_* environment variables (ApplyEnv)
//  4. Command-line flags, applied by the cmd package
//
// The cipher key itself is never stored. It may be supplied through the
// VIGENERE_KEY environment variable, read by KeyFromEnv.
//
// # Settings
//
// AppSettings holds the resolved file locations and is initialized at
// startup. Tests replace it with NewSettings over a temporary directory.
package configs
