package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Provider.Binary != "yt-dlp" {
		t.Errorf("Provider.Binary = %q, want %q", cfg.Provider.Binary, "yt-dlp")
	}
	if cfg.History.Retention != 50 {
		t.Errorf("History.Retention = %d, want 50", cfg.History.Retention)
	}
	if cfg.Playback.Advance != AdvanceStop {
		t.Errorf("Playback.Advance = %q, want %q", cfg.Playback.Advance, AdvanceStop)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.History.Retention = 10
	cfg.Playback.Advance = AdvanceLoop
	cfg.ApplyDefaults()

	if cfg.History.Retention != 10 {
		t.Errorf("Retention = %d, want explicit value 10", cfg.History.Retention)
	}
	if cfg.Playback.Advance != AdvanceLoop {
		t.Errorf("Advance = %q, want explicit value %q", cfg.Playback.Advance, AdvanceLoop)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[provider]
search_limit = 5

[playback]
advance = "loop"

[history]
retention = 25
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Provider.SearchLimit != 5 {
		t.Errorf("SearchLimit = %d, want 5", cfg.Provider.SearchLimit)
	}
	if cfg.Playback.Advance != AdvanceLoop {
		t.Errorf("Advance = %q, want %q", cfg.Playback.Advance, AdvanceLoop)
	}
	if cfg.History.Retention != 25 {
		t.Errorf("Retention = %d, want 25", cfg.History.Retention)
	}
	// Untouched sections fall back to defaults.
	if cfg.Player.Binary != "mpv" {
		t.Errorf("Player.Binary = %q, want default %q", cfg.Player.Binary, "mpv")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PLUME_COOKIES", "/tmp/cookies.txt")
	t.Setenv("PLUME_ADVANCE", "loop")
	t.Setenv("PLUME_SEARCH_LIMIT", "7")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Provider.CookiesFile != "/tmp/cookies.txt" {
		t.Errorf("CookiesFile = %q, want env override", cfg.Provider.CookiesFile)
	}
	if cfg.Playback.Advance != AdvanceLoop {
		t.Errorf("Advance = %q, want env override %q", cfg.Playback.Advance, AdvanceLoop)
	}
	if cfg.Provider.SearchLimit != 7 {
		t.Errorf("SearchLimit = %d, want env override 7", cfg.Provider.SearchLimit)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad advance", func(c *Config) { c.Playback.Advance = "shuffle" }},
		{"volume above range", func(c *Config) { c.Playback.Volume = 150 }},
		{"negative retention", func(c *Config) { c.History.Retention = -1 }},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }},
		{"zero seek step", func(c *Config) { c.Player.SeekStep = -3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
