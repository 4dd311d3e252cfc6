package config

import (
	"os"
	"path/filepath"
)

// AdvanceStop and AdvanceLoop are the recognized queue-end behaviors.
const (
	AdvanceStop = "stop"
	AdvanceLoop = "loop"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Binary:      "yt-dlp",
			SearchLimit: 20,
			TimeoutSecs: 15,
		},
		Player: PlayerConfig{
			Binary:     "mpv",
			SocketPath: defaultSocketPath(),
			SeekStep:   5,
			VolumeStep: 5,
		},
		Playback: PlaybackConfig{
			Advance: AdvanceStop,
			Volume:  50,
		},
		History: HistoryConfig{
			Retention: 50,
		},
		Storage: StorageConfig{
			Path: defaultStorePath(),
		},
		TUI: TUIConfig{
			TickInterval: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Provider
	if c.Provider.Binary == "" {
		c.Provider.Binary = d.Provider.Binary
	}
	if c.Provider.SearchLimit == 0 {
		c.Provider.SearchLimit = d.Provider.SearchLimit
	}
	if c.Provider.TimeoutSecs == 0 {
		c.Provider.TimeoutSecs = d.Provider.TimeoutSecs
	}

	// Player
	if c.Player.Binary == "" {
		c.Player.Binary = d.Player.Binary
	}
	if c.Player.SocketPath == "" {
		c.Player.SocketPath = d.Player.SocketPath
	}
	if c.Player.SeekStep == 0 {
		c.Player.SeekStep = d.Player.SeekStep
	}
	if c.Player.VolumeStep == 0 {
		c.Player.VolumeStep = d.Player.VolumeStep
	}

	// Playback
	if c.Playback.Advance == "" {
		c.Playback.Advance = d.Playback.Advance
	}
	if c.Playback.Volume == 0 {
		c.Playback.Volume = d.Playback.Volume
	}

	// History
	if c.History.Retention == 0 {
		c.History.Retention = d.History.Retention
	}

	// Storage
	if c.Storage.Path == "" {
		c.Storage.Path = d.Storage.Path
	}

	// TUI
	if c.TUI.TickInterval == 0 {
		c.TUI.TickInterval = d.TUI.TickInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

func defaultSocketPath() string {
	return filepath.Join(os.TempDir(), "plume-mpv.sock")
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "plume.db")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "plume", "plume.db")
}
