package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"dtop/internal/errors"
)

// GlobalConfigDir is the directory under $HOME/.config searched for
// config.{yaml,yml} once the current-directory candidates are exhausted.
const GlobalConfigDir = ".config/dtop"

// Find locates the config file using the following search order:
//  1. ./config.{yaml,yml}
//  2. ./.dtop.{yaml,yml}
//  3. ~/.config/dtop/config.{yaml,yml}
//  4. ~/.dtop.{yaml,yml}
//
// The first hit wins. Returns an empty path (and no error) if none exist —
// running with no config file is normal, not an error.
func Find() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	for _, name := range []string{"config.yaml", "config.yml", ".dtop.yaml", ".dtop.yml"} {
		p := filepath.Join(cwd, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	home, _ := os.UserHomeDir()
	if home == "" {
		return "", nil
	}

	for _, name := range []string{"config.yaml", "config.yml"} {
		p := filepath.Join(home, GlobalConfigDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	for _, name := range []string{".dtop.yaml", ".dtop.yml"} {
		p := filepath.Join(home, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file "+path,
			"Check the file exists and is valid YAML")
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}
	return cfg, nil
}

// LoadOrDefault finds and loads the config file, or returns defaults if
// none exists. A missing config file is never an error: it's ignored
// silently in favor of defaults and CLI flags.
func LoadOrDefault() (*Config, error) {
	path, err := Find()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}
