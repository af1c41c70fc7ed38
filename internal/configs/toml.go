package configs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SaveTOML saves a struct to a TOML file.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML loads a TOML file into a struct. Keys present in the file
// overwrite the matching fields; absent keys keep their current values.
func LoadTOML(filePath string, data interface{}) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}

// EncodeTOML renders data as TOML text.
func EncodeTOML(data interface{}) (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(data); err != nil {
		return "", err
	}
	return b.String(), nil
}
