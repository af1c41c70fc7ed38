package history

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/vigenere/internal/configs"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single history entry.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	ID        string `json:"id"`
	Operation string `json:"op"` // "cipher" or "decipher".
	Policy    string `json:"policy"`
	Mode      string `json:"mode"` // "text", "stream" or "file".

	Source     string `json:"source,omitempty"`
	Output     string `json:"output,omitempty"`
	SymbolsIn  int    `json:"symbols_in"`
	SymbolsOut int    `json:"symbols_out"`
	Invalid    int    `json:"invalid_bytes,omitempty"`
	Marker     bool   `json:"marker"`
	KeyFP      string `json:"key_fp,omitempty"`
	Error      string `json:"error,omitempty"`
}

// NewEntry returns an entry for op with a fresh ID.
func NewEntry(op string) Entry {
	return Entry{
		ID:        uuid.New().String(),
		Operation: op,
	}
}

// Time parses the entry's timestamp.
func (e Entry) Time() (time.Time, error) {
	return time.Parse(TimestampFormat, e.Timestamp)
}

// Log appends an entry to the history file. Failures are swallowed: an
// operation never fails because its history could not be recorded.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the history file.
func LogPath() string {
	if configs.AppSettings == nil {
		return ""
	}
	return configs.AppSettings.HistoryPath
}

// ReadEntries reads all entries from the history file.
// Returns an empty slice if the file doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// KeyFingerprint returns a short one-way digest of a key under a policy, so
// history can show which runs shared a key without storing the key. The
// digest is unsalted, so short keys can be found by hashing guesses.
func KeyFingerprint(policy, key string) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(policy))
	h.Write([]byte{0})
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil)[:8])
}
