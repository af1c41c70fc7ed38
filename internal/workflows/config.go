package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/vigenere/internal/configs"
	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/PolarWolf314/vigenere/internal/vigenere"
)

// ConfigInitOptions configures the config init workflow.
type ConfigInitOptions struct {
	// Policy sets cipher.policy in the new file. Empty keeps the default.
	Policy string

	// Force overwrites an existing config file.
	Force bool
}

// ConfigResult describes the config file after a config workflow.
type ConfigResult struct {
	Path   string
	Exists bool
	Config *configs.Config
}

// ConfigInit writes a config file holding the defaults.
//
// Returns ErrConfigExists if the file exists and Force is not set.
// Returns ErrUnknownPolicy if Policy names no policy.
func ConfigInit(ctx context.Context, opts ConfigInitOptions) (*ConfigResult, error) {
	path := configs.AppSettings.ConfigPath

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrConfigExists, path)
	}

	config := configs.Default()
	if opts.Policy != "" {
		p, err := vigenere.PolicyByName(opts.Policy)
		if err != nil {
			return nil, err
		}
		config.Cipher.Policy = p.Name()
	}

	if err := configs.Save(config); err != nil {
		return nil, err
	}

	return &ConfigResult{Path: path, Exists: true, Config: config}, nil
}

// ConfigShow returns the effective configuration: defaults, then the file,
// then environment overrides.
func ConfigShow(ctx context.Context) (*ConfigResult, error) {
	path := configs.AppSettings.ConfigPath

	config, err := configs.Load()
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(path)
	return &ConfigResult{Path: path, Exists: statErr == nil, Config: config}, nil
}

// ConfigSetResult describes one changed config key.
type ConfigSetResult struct {
	Path     string
	Key      string
	OldValue string
	NewValue string
}

// ConfigSet changes one dotted key in the config file, creating the file if
// needed. Environment overrides are not written back.
//
// Returns ErrInvalidConfigKey for an unknown key and ErrInvalidConfig for a
// value that fails validation.
func ConfigSet(ctx context.Context, key, value string) (*ConfigSetResult, error) {
	path := configs.AppSettings.ConfigPath

	config := configs.Default()
	if _, err := os.Stat(path); err == nil {
		if err := configs.LoadTOML(path, config); err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
		}
	}

	old, err := config.Get(key)
	if err != nil {
		return nil, err
	}
	if err := config.Set(key, value); err != nil {
		return nil, err
	}
	if err := configs.Save(config); err != nil {
		return nil, err
	}

	updated, _ := config.Get(key)
	return &ConfigSetResult{Path: path, Key: key, OldValue: old, NewValue: updated}, nil
}
