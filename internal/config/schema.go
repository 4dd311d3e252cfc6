package config

// Config is the root configuration structure.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Player   PlayerConfig   `toml:"player"`
	Playback PlaybackConfig `toml:"playback"`
	History  HistoryConfig  `toml:"history"`
	Storage  StorageConfig  `toml:"storage"`
	TUI      TUIConfig      `toml:"tui"`
	Log      LogConfig      `toml:"log"`
}

// ProviderConfig holds content provider (yt-dlp) settings.
type ProviderConfig struct {
	Binary      string `toml:"binary"`
	SearchLimit int    `toml:"search_limit"`
	CookiesFile string `toml:"cookies_file"`
	TimeoutSecs int    `toml:"timeout"`
}

// PlayerConfig holds external player (mpv) settings.
type PlayerConfig struct {
	Binary     string `toml:"binary"`
	SocketPath string `toml:"socket_path"`
	SeekStep   int    `toml:"seek_step"`
	VolumeStep int    `toml:"volume_step"`
}

// PlaybackConfig holds playback behavior settings.
type PlaybackConfig struct {
	// Advance controls what happens when the last queued track ends:
	// "stop" disengages the queue, "loop" wraps to the first track.
	Advance string `toml:"advance"`
	Volume  int    `toml:"volume"`
}

// HistoryConfig holds play history settings.
type HistoryConfig struct {
	Retention int `toml:"retention"`
}

// StorageConfig holds embedded store settings.
type StorageConfig struct {
	Path string `toml:"path"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	TickInterval int `toml:"tick_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
