package configs

import (
	"log"
	"os"
	"path/filepath"
)

type Settings struct {
	ConfigDir   string
	DataDir     string
	ConfigPath  string
	HistoryPath string
}

var AppSettings *Settings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	AppSettings = NewSettings(filepath.Join(configDir, "vigenere"), filepath.Join(dataDir, "vigenere"))
}

// NewSettings derives the file locations used under the given directories.
func NewSettings(configDir, dataDir string) *Settings {
	return &Settings{
		ConfigDir:   configDir,
		DataDir:     dataDir,
		ConfigPath:  filepath.Join(configDir, "config.toml"),
		HistoryPath: filepath.Join(dataDir, "history.jsonl"),
	}
}
