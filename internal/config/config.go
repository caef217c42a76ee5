// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/studylab-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete studylab client configuration.
type Config struct {
	// Server settings
	Server ServerConfig `toml:"server"`

	// UI settings
	UI UIConfig `toml:"ui"`

	// Voice dictation settings
	Voice VoiceConfig `toml:"voice"`
}

// ServerConfig points the client at the tutoring backend.
type ServerConfig struct {
	// URL is the backend base URL
	URL string `toml:"url"`
	// TimeoutSecs is the per-request timeout for ordinary calls
	TimeoutSecs int `toml:"timeout_secs"`
	// ChatTimeoutSecs is the timeout for /chat, which waits on the LLM
	ChatTimeoutSecs int `toml:"chat_timeout_secs"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is "dark", "light", or "" for terminal detection
	Theme string `toml:"theme"`
	// MarkdownReplies renders tutor replies through glamour
	MarkdownReplies bool `toml:"markdown_replies"`
}

// VoiceConfig holds dictation settings.
type VoiceConfig struct {
	// Enabled allows the dictation toggle at all
	Enabled bool `toml:"enabled"`
	// Engine names the external speech engine command ("" = autodetect)
	Engine string `toml:"engine"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:             "http://127.0.0.1:8000",
			TimeoutSecs:     15,
			ChatTimeoutSecs: 90,
		},
		UI: UIConfig{
			Theme:           "",
			MarkdownReplies: true,
		},
		Voice: VoiceConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultPath returns ~/.studylab/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".studylab", "config.toml"), nil
}

// Load reads the config from the default path. A missing file yields
// the defaults.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	return LoadPath(path)
}

// LoadPath reads the config from a specific file, applies env
// overrides, and validates the result.
func LoadPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment overrides on top of file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("STUDYLAB_API_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("STUDYLAB_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("server.url must be a valid http(s) URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("server.url must use http or https")
	}
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = 15
	}
	if c.Server.ChatTimeoutSecs <= 0 {
		c.Server.ChatTimeoutSecs = 90
	}
	switch c.UI.Theme {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.theme %q is not recognized (dark, light)", c.UI.Theme)
	}
	return nil
}

// Timeout returns the ordinary request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// ChatTimeout returns the chat request timeout as a duration.
func (c *Config) ChatTimeout() time.Duration {
	return time.Duration(c.Server.ChatTimeoutSecs) * time.Second
}

// =============================================================================
// SAVING
// =============================================================================

// SavePath writes the config as TOML to the given file atomically.
func (c *Config) SavePath(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0644)
}
