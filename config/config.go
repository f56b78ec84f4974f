// Package config loads the optional fsr.yaml file. Values only pre-fill the
// form; nothing is ever written back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sonnes/fsrunner/server"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "fsr.yaml"

// Config holds the launcher settings.
type Config struct {
	Executable string `yaml:"executable"` // file server binary
	Path       string `yaml:"path"`       // initial folder to serve
	Port       string `yaml:"port"`       // initial port text
	LogLevel   string `yaml:"log_level"`  // debug, info, warn, error
	LogFile    string `yaml:"log_file"`   // log destination in interactive mode
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Executable: server.DefaultExecutable,
		LogLevel:   "error",
		LogFile:    filepath.Join(os.TempDir(), "fsr.log"),
	}
}

// Load reads the file at path over the defaults. An empty path reads
// DefaultFile if it exists; a path that was named explicitly must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	// Empty keys in the file fall back to defaults.
	def := Default()
	if cfg.Executable == "" {
		cfg.Executable = def.Executable
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.LogFile == "" {
		cfg.LogFile = def.LogFile
	}
	return cfg, nil
}
