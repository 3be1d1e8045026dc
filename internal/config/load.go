package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	// AppName names the per-user config directory.
	AppName = "cubetac"
	// FileName is the config file looked up in every search directory.
	FileName = "config.yaml"
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid cubetac config")

// Load builds the config from defaults, then the first config file found,
// then command-line flags. The file used is recorded in Source.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg.Source = path
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (%s): %w", ErrInvalid, cfg.sourceName(), err)
	}
	return cfg, nil
}

func (c *Config) sourceName() string {
	if c.Source == "" {
		return "defaults and flags"
	}
	return c.Source
}

// SearchPaths lists where Load looks for a config file, first match wins:
// the working directory, the directory holding the executable (where the
// packager writes one), then the per-user config directory.
func SearchPaths() []string {
	paths := []string{filepath.Join(".", FileName)}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), FileName))
	}
	return append(paths, filepath.Join(ConfigDir(), FileName))
}

func findConfigFile() string {
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user cubetac config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", AppName)
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), AppName)
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName)
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", AppName)
	}
}

// loadFromFile merges a YAML file over the values already in cfg. Unknown
// keys are rejected so a typo does not silently fall back to a default.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}
