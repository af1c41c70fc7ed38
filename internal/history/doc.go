// Package history records cipher and decipher operations.
//
// Entries are stored as JSON Lines (one JSON object per line) at:
//
//	$XDG_DATA_HOME/vigenere/history.jsonl
//
// Each entry contains a timestamp, an ID, the operation and policy, the
// source and destination, symbol counts and a key fingerprint. The key
// itself is never written.
//
// # Usage
//
//	entry := history.NewEntry("cipher")
//	entry.Policy = policy.Name()
//	history.Log(entry)
//
// # Failure Handling
//
// Recording is best-effort. If writing fails (permissions, disk full), the
// operation continues without error. Malformed lines are skipped on read.
package history
