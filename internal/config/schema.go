package config

// Config is the root configuration structure.
type Config struct {
	Player     PlayerConfig     `toml:"player"`
	Downloader DownloaderConfig `toml:"downloader"`
	Log        LogConfig        `toml:"log"`
}

// PlayerConfig holds audio output and prompt settings.
type PlayerConfig struct {
	SampleRate int    `toml:"sample_rate"`
	BufferMs   int    `toml:"buffer_ms"`
	Prompt     string `toml:"prompt"`
}

// DownloaderConfig holds settings for fetching remote audio.
type DownloaderConfig struct {
	Binary      string   `toml:"binary"`
	Format      string   `toml:"format"`
	AudioFormat string   `toml:"audio_format"`
	ExtraArgs   []string `toml:"extra_args"`
	ScratchDir  string   `toml:"scratch_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
