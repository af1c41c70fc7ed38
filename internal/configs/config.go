package configs

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/PolarWolf314/vigenere/internal/textio"
	"github.com/PolarWolf314/vigenere/internal/vigenere"
)

// Normalization modes for plaintext read by cipher.
const (
	NormalizeNone = "none"
	NormalizeNFC  = "nfc"
)

type Config struct {
	Cipher  CipherConfig  `toml:"cipher"`
	IO      IOConfig      `toml:"io"`
	History HistoryConfig `toml:"history"`
}

type CipherConfig struct {
	Policy    string `toml:"policy" env:"VIGENERE_POLICY"`
	Marker    string `toml:"marker" env:"VIGENERE_MARKER"`
	UseMarker bool   `toml:"use_marker" env:"VIGENERE_USE_MARKER"`
}

type IOConfig struct {
	BatchSize  int    `toml:"batch_size" env:"VIGENERE_BATCH_SIZE"`
	BufferSize int    `toml:"buffer_size" env:"VIGENERE_BUFFER_SIZE"`
	Suffix     string `toml:"suffix" env:"VIGENERE_SUFFIX"`
	Normalize  string `toml:"normalize" env:"VIGENERE_NORMALIZE"`
}

type HistoryConfig struct {
	Enabled bool `toml:"enabled" env:"VIGENERE_HISTORY"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Cipher: CipherConfig{
			Policy:    vigenere.DefaultPolicy.Name(),
			UseMarker: true,
		},
		IO: IOConfig{
			BatchSize:  textio.DefaultBatchSize,
			BufferSize: textio.DefaultBufferSize,
			Suffix:     ".vig",
			Normalize:  NormalizeNone,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// Load reads the config file over the defaults and then applies environment
// overrides. A missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(AppSettings.ConfigPath)
}

// LoadFrom is Load with an explicit file path.
func LoadFrom(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(path, config); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes the config file.
func Save(config *Config) error {
	return SaveTo(AppSettings.ConfigPath, config)
}

// SaveTo is Save with an explicit file path.
func SaveTo(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate checks every field for a usable value.
func (c *Config) Validate() error {
	policy, err := vigenere.PolicyByName(c.Cipher.Policy)
	if err != nil {
		return fmt.Errorf("%w: cipher.policy: %v", kerrors.ErrInvalidConfig, err)
	}
	for _, r := range c.Cipher.Marker {
		if !policy.InDomain(r) {
			return fmt.Errorf("%w: cipher.marker %q under policy %s", kerrors.ErrInvalidMarker, c.Cipher.Marker, policy.Name())
		}
	}
	if c.IO.BatchSize <= 0 {
		return fmt.Errorf("%w: io.batch_size must be positive, got %d", kerrors.ErrInvalidConfig, c.IO.BatchSize)
	}
	if c.IO.BufferSize <= 0 {
		return fmt.Errorf("%w: io.buffer_size must be positive, got %d", kerrors.ErrInvalidConfig, c.IO.BufferSize)
	}
	if strings.TrimSpace(c.IO.Suffix) == "" {
		return fmt.Errorf("%w: io.suffix must not be empty", kerrors.ErrInvalidConfig)
	}
	switch c.IO.Normalize {
	case NormalizeNone, NormalizeNFC:
	default:
		return fmt.Errorf("%w: io.normalize must be %q or %q, got %q",
			kerrors.ErrInvalidConfig, NormalizeNone, NormalizeNFC, c.IO.Normalize)
	}
	return nil
}

// Policy resolves the configured policy.
func (c *Config) Policy() (vigenere.Policy, error) {
	return vigenere.PolicyByName(c.Cipher.Policy)
}

// MarkerFor returns the configured marker, or the policy's own when unset.
func (c *Config) MarkerFor(p vigenere.Policy) string {
	if c.Cipher.Marker != "" {
		return c.Cipher.Marker
	}
	return p.Marker()
}

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func boolField(ptr func(*Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*ptr(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", v)
			}
			*ptr(c) = b
			return nil
		},
	}
}

func intField(ptr func(*Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*ptr(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", v)
			}
			*ptr(c) = n
			return nil
		},
	}
}

func stringField(ptr func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error {
			*ptr(c) = v
			return nil
		},
	}
}

var fields = map[string]field{
	"cipher.policy":     stringField(func(c *Config) *string { return &c.Cipher.Policy }),
	"cipher.marker":     stringField(func(c *Config) *string { return &c.Cipher.Marker }),
	"cipher.use_marker": boolField(func(c *Config) *bool { return &c.Cipher.UseMarker }),
	"io.batch_size":     intField(func(c *Config) *int { return &c.IO.BatchSize }),
	"io.buffer_size":    intField(func(c *Config) *int { return &c.IO.BufferSize }),
	"io.suffix":         stringField(func(c *Config) *string { return &c.IO.Suffix }),
	"io.normalize":      stringField(func(c *Config) *string { return &c.IO.Normalize }),
	"history.enabled":   boolField(func(c *Config) *bool { return &c.History.Enabled }),
}

// Keys returns the dotted names accepted by Get and Set.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted config key.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", kerrors.ErrInvalidConfigKey, key)
	}
	return f.get(c), nil
}

// Set assigns a dotted config key and validates the result. On failure the
// config is left unchanged.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidConfigKey, key)
	}

	next := *c
	if err := f.set(&next, value); err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, key, err)
	}
	if key == "cipher.policy" {
		if p, err := vigenere.PolicyByName(next.Cipher.Policy); err == nil {
			next.Cipher.Policy = p.Name()
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}

	*c = next
	return nil
}
