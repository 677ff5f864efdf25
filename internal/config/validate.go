package config

import (
	"errors"
	"fmt"
	"strings"

	rerrors "github.com/tessro/riffle/internal/errors"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.Downloader.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("downloader: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", rerrors.ErrInvalidConfig, errors.Join(errs...))
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample_rate %d out of range (8000-192000)", c.SampleRate)
	}
	if c.BufferMs < 0 {
		return errors.New("buffer_ms must be non-negative")
	}
	return nil
}

// Validate checks DownloaderConfig for errors.
func (c *DownloaderConfig) Validate() error {
	switch c.AudioFormat {
	case "", "flac", "mp3", "wav", "vorbis":
		// valid
	default:
		return fmt.Errorf("invalid audio_format: %s (must be flac, mp3, wav, or vorbis)", c.AudioFormat)
	}
	for _, arg := range c.ExtraArgs {
		if arg == "-o" || strings.HasPrefix(arg, "--output") {
			return errors.New("extra_args must not override the output template")
		}
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
