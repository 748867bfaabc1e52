// Package file provides the TOML-backed configuration for the StudyBuddy CLI.
// Configuration lives in a single file within the studybuddy config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when the config file is absent or a field is unset.
const (
	DefaultBackendURL = "http://localhost:8000"
	DefaultTimeout    = 30 * time.Second
	DefaultTopK       = 3
)

// BackendURLEnv overrides the configured backend URL when set.
const BackendURLEnv = "STUDYBUDDY_BACKEND_URL"

// Config is the on-disk configuration shape.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Chat    ChatConfig    `toml:"chat"`
}

// BackendConfig configures the connection to the StudyBuddy backend.
type BackendConfig struct {
	// URL is the backend base URL.
	URL string `toml:"url"`

	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// ChatConfig configures chat defaults.
type ChatConfig struct {
	// TopK is the default number of evidence chunks per question.
	TopK int `toml:"top_k"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			URL:            DefaultBackendURL,
			TimeoutSeconds: int(DefaultTimeout / time.Second),
		},
		Chat: ChatConfig{
			TopK: DefaultTopK,
		},
	}
}

// Timeout returns the configured request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.Backend.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// BackendURL returns the effective backend URL: the environment override
// when set, otherwise the configured value, otherwise the default.
func (c Config) BackendURL() string {
	if env := os.Getenv(BackendURLEnv); env != "" {
		return env
	}
	if c.Backend.URL != "" {
		return c.Backend.URL
	}
	return DefaultBackendURL
}

// Path returns the config file path under configDir.
// If configDir is empty, defaults to ~/.studybuddy/config.toml.
func Path(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".studybuddy")
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads configuration from configDir, filling unset fields with
// defaults. A missing file is not an error: defaults are returned.
func Load(configDir string) (Config, error) {
	cfg := Default()

	path, err := Path(configDir)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Backend.URL == "" {
		cfg.Backend.URL = DefaultBackendURL
	}
	if cfg.Backend.TimeoutSeconds <= 0 {
		cfg.Backend.TimeoutSeconds = int(DefaultTimeout / time.Second)
	}
	if cfg.Chat.TopK <= 0 {
		cfg.Chat.TopK = DefaultTopK
	}
	return cfg, nil
}

// Save persists the configuration to configDir, creating the directory
// if needed.
func Save(configDir string, cfg Config) error {
	path, err := Path(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(path, data, 0600)
}

// EnsureFile writes the default configuration to configDir when no
// config file exists yet, giving users a file to edit. An existing
// file is left untouched.
func EnsureFile(configDir string) error {
	path, err := Path(configDir)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return Save(configDir, Default())
}
