package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.plumerc, $XDG_CONFIG_HOME/plume/config.toml, ~/.config/plume/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the config file path that Load would read, or the default
// location when no file exists yet.
func Path() string {
	if p := findConfigFile(); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".plumerc")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".plumerc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "plume", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Provider
	if v := os.Getenv("PLUME_YTDLP_BINARY"); v != "" {
		cfg.Provider.Binary = v
	}
	if v := os.Getenv("PLUME_COOKIES"); v != "" {
		cfg.Provider.CookiesFile = v
	}
	if v := os.Getenv("PLUME_SEARCH_LIMIT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Provider.SearchLimit = i
		}
	}

	// Player
	if v := os.Getenv("PLUME_MPV_BINARY"); v != "" {
		cfg.Player.Binary = v
	}
	if v := os.Getenv("PLUME_MPV_SOCKET"); v != "" {
		cfg.Player.SocketPath = v
	}

	// Playback
	if v := os.Getenv("PLUME_ADVANCE"); v != "" {
		cfg.Playback.Advance = v
	}

	// Storage
	if v := os.Getenv("PLUME_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}

	// Log
	if v := os.Getenv("PLUME_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PLUME_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
