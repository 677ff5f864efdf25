package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			SampleRate: 44100,
			BufferMs:   250,
			Prompt:     "> ",
		},
		Downloader: DownloaderConfig{
			Binary:      "yt-dlp",
			Format:      "bestaudio",
			AudioFormat: "flac",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Player
	if c.Player.SampleRate == 0 {
		c.Player.SampleRate = d.Player.SampleRate
	}
	if c.Player.BufferMs == 0 {
		c.Player.BufferMs = d.Player.BufferMs
	}
	if c.Player.Prompt == "" {
		c.Player.Prompt = d.Player.Prompt
	}

	// Downloader
	if c.Downloader.Binary == "" {
		c.Downloader.Binary = d.Downloader.Binary
	}
	if c.Downloader.Format == "" {
		c.Downloader.Format = d.Downloader.Format
	}
	if c.Downloader.AudioFormat == "" {
		c.Downloader.AudioFormat = d.Downloader.AudioFormat
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
