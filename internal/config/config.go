package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	rerrors "github.com/tessro/riffle/internal/errors"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.rifflerc, $XDG_CONFIG_HOME/riffle/config.toml, ~/.config/riffle/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", rerrors.ErrInvalidConfig, path, err)
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrConfigNotFound, path)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", rerrors.ErrInvalidConfig, path, err)
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultPath returns the path config init writes to.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rifflerc"
	}
	return filepath.Join(home, ".rifflerc")
}

// Encode writes cfg as TOML with a header comment.
func Encode(w io.Writer, cfg *Config) error {
	if _, err := fmt.Fprint(w, "# Riffle configuration\n\n"); err != nil {
		return err
	}
	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".rifflerc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "riffle", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Player
	if v := os.Getenv("RIFFLE_SAMPLE_RATE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.SampleRate = i
		}
	}
	if v := os.Getenv("RIFFLE_BUFFER_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.BufferMs = i
		}
	}
	if v := os.Getenv("RIFFLE_PROMPT"); v != "" {
		cfg.Player.Prompt = v
	}

	// Downloader
	if v := os.Getenv("RIFFLE_YTDLP"); v != "" {
		cfg.Downloader.Binary = v
	}
	if v := os.Getenv("RIFFLE_AUDIO_FORMAT"); v != "" {
		cfg.Downloader.AudioFormat = v
	}
	if v := os.Getenv("RIFFLE_SCRATCH_DIR"); v != "" {
		cfg.Downloader.ScratchDir = v
	}

	// Log
	if v := os.Getenv("RIFFLE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RIFFLE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
