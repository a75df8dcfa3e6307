// Package config loads seshat settings. Layering order:
// defaults < config file < environment. Command-line flags are
// layered on top by the commands that own them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	// Targets are scanned for transcripts. Each entry may name a
	// file, a directory, or a glob pattern, and may start with ~.
	Targets []string `toml:"targets"`

	// ResumeCommand is split shell-style and invoked with the
	// session id (or path) appended as the final argument.
	ResumeCommand string `toml:"resume_command"`

	// Workers caps the scan pool. Zero sizes it from the CPU count.
	Workers int `toml:"workers"`

	// ConfigDir is where the config file and the update-check
	// cache live. Settable only through the environment.
	ConfigDir string `toml:"-"`
}

// Default returns a Config with default values.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("determining home directory: %w", err)
	}
	return Config{
		Targets:       []string{filepath.Join(home, ".codex", "sessions")},
		ResumeCommand: "codex resume",
		ConfigDir:     filepath.Join(home, ".config", "seshat"),
	}, nil
}

// Load builds a Config by layering: defaults < config file < env.
// A missing config file is fine; a malformed one is an error.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	// The config dir env var has to win before the file is read,
	// since it decides which file that is.
	if v := os.Getenv("SESHAT_CONFIG_DIR"); v != "" {
		cfg.ConfigDir = v
	}
	if err := cfg.loadFile(); err != nil {
		return cfg, err
	}
	cfg.loadEnv()
	return cfg, nil
}

func (c *Config) configPath() string {
	return filepath.Join(c.ConfigDir, "config.toml")
}

func (c *Config) loadFile() error {
	path := c.configPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv("SESHAT_SESSIONS"); v != "" {
		c.Targets = filepath.SplitList(v)
	}
}
