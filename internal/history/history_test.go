package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/vigenere/internal/configs"
)

// useTempHistory points the history file at a temporary directory.
func useTempHistory(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	originalSettings := configs.AppSettings
	configs.AppSettings = configs.NewSettings(filepath.Join(tempDir, "config"), filepath.Join(tempDir, "data"))
	t.Cleanup(func() {
		configs.AppSettings = originalSettings
	})
	return configs.AppSettings.HistoryPath
}

func TestLog_CreatesFileAndDirectory(t *testing.T) {
	logPath := useTempHistory(t)

	Log(Entry{Operation: "cipher", Policy: "letters"})

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatalf("History file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	logPath := useTempHistory(t)

	Log(Entry{Operation: "cipher"})
	Log(Entry{Operation: "decipher"})
	Log(Entry{Operation: "cipher"})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_ValidJSONAndTimestamp(t *testing.T) {
	logPath := useTempHistory(t)

	entry := NewEntry("cipher")
	entry.Policy = "unicode"
	entry.Mode = "file"
	entry.Source = "notes.txt"
	entry.Output = "notes.txt.vig"
	entry.SymbolsIn = 42
	entry.SymbolsOut = 49
	entry.Marker = true
	Log(entry)

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &parsed); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if parsed.ID != entry.ID || parsed.SymbolsOut != 49 || parsed.Output != "notes.txt.vig" {
		t.Errorf("Unexpected entry: %+v", parsed)
	}
	if _, err := parsed.Time(); err != nil {
		t.Errorf("Expected parseable timestamp, got %q: %v", parsed.Timestamp, err)
	}
}

func TestLog_NoSettingsIsNoop(t *testing.T) {
	originalSettings := configs.AppSettings
	configs.AppSettings = nil
	defer func() {
		configs.AppSettings = originalSettings
	}()

	// Must not panic.
	Log(Entry{Operation: "cipher"})

	entries, err := ReadEntries()
	if err != nil || entries != nil {
		t.Errorf("Expected nil entries and no error, got %v, %v", entries, err)
	}
}

func TestReadEntries_MissingFile(t *testing.T) {
	useTempHistory(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestParseEntries_SkipsMalformed(t *testing.T) {
	data := []byte(`{"ts":"2026-01-01T00:00:00.000000Z","op":"cipher"}
not json
{"ts":"2026-01-02T00:00:00.000000Z","op":"decipher"}

{"truncated":`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "cipher" || entries[1].Operation != "decipher" {
		t.Errorf("Unexpected operations: %q, %q", entries[0].Operation, entries[1].Operation)
	}
}

func TestNewEntry_UniqueIDs(t *testing.T) {
	a := NewEntry("cipher")
	b := NewEntry("cipher")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("Expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if len(a.ID) != 36 {
		t.Errorf("Expected UUID length 36, got %d", len(a.ID))
	}
}

func TestKeyFingerprint(t *testing.T) {
	a := KeyFingerprint("letters", "LEMON")
	if len(a) != 16 {
		t.Fatalf("Expected 16 hex characters, got %q", a)
	}
	if a != KeyFingerprint("letters", "LEMON") {
		t.Error("Expected fingerprint to be deterministic")
	}
	if a == KeyFingerprint("ascii", "LEMON") {
		t.Error("Expected policy to change the fingerprint")
	}
	if strings.Contains(a, "LEMON") {
		t.Error("Fingerprint must not contain the key")
	}
}
