package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when neither a --config flag nor CONFIG_PATH names a
// file. It may be absent.
const DefaultPath = "./config.yaml"

// Load is LoadFrom with no explicit path.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads configuration with priority ENV > YAML > env-default tags.
// The file is path, then CONFIG_PATH, then DefaultPath. A named file must
// exist; a missing DefaultPath falls back to ENV and defaults alone.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	optional := path == ""
	if optional {
		path = DefaultPath
	}

	var cfg Config
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
