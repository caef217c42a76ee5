// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.URL != "http://127.0.0.1:8000" {
		t.Errorf("default URL = %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSecs != 15 {
		t.Errorf("default TimeoutSecs = %d, want 15", cfg.Server.TimeoutSecs)
	}
	if !cfg.UI.MarkdownReplies {
		t.Error("markdown replies should default on")
	}
}

func TestLoadPath_Missing(t *testing.T) {
	cfg, err := LoadPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Server.URL != "http://127.0.0.1:8000" {
		t.Errorf("URL = %q", cfg.Server.URL)
	}
}

func TestLoadPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "https://tutor.example.com"
timeout_secs = 30

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}
	if cfg.Server.URL != "https://tutor.example.com" {
		t.Errorf("URL = %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d", cfg.Server.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	// Unset fields keep defaults.
	if cfg.Server.ChatTimeoutSecs != 90 {
		t.Errorf("ChatTimeoutSecs = %d, want default 90", cfg.Server.ChatTimeoutSecs)
	}
}

func TestLoadPath_EnvOverride(t *testing.T) {
	t.Setenv("STUDYLAB_API_URL", "http://10.0.0.5:8000")

	cfg, err := LoadPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.URL != "http://10.0.0.5:8000" {
		t.Errorf("env override not applied: %q", cfg.Server.URL)
	}
}

func TestValidate_BadURL(t *testing.T) {
	cfg := Default()
	cfg.Server.URL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("invalid URL should fail validation")
	}

	cfg.Server.URL = "ftp://example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("non-http scheme should fail validation")
	}
}

func TestValidate_BadTheme(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "solarized"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown theme should fail validation")
	}
}

func TestSavePath_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Server.URL = "http://box:8000"
	cfg.UI.Theme = "dark"

	if err := cfg.SavePath(path); err != nil {
		t.Fatalf("SavePath failed: %v", err)
	}

	loaded, err := LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}
	if loaded.Server.URL != "http://box:8000" {
		t.Errorf("URL = %q", loaded.Server.URL)
	}
	if loaded.UI.Theme != "dark" {
		t.Errorf("Theme = %q", loaded.UI.Theme)
	}
}
