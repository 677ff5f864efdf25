package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/riffle/internal/config"
	rerrors "github.com/tessro/riffle/internal/errors"
)

var (
	cfgFile    string
	verbose    bool
	sampleRate int
	scratchDir string

	cfg *config.Config
)

// skipConfig marks commands that run without loading a config file.
const skipConfig = "riffle/skip-config"

var rootCmd = &cobra.Command{
	Use:   "riffle [file|link]...",
	Short: "Play local audio files and YouTube links from a command prompt",
	Long: `Riffle is an interactive audio player. Type play followed by a file path
or a YouTube link to queue audio, then control playback with pause, resume,
skip and clear. Any references given on the command line are queued before
the prompt opens.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.rifflerc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().IntVar(&sampleRate, "sample-rate", 0, "output sample rate in Hz")
	rootCmd.Flags().StringVar(&scratchDir, "scratch-dir", "", "directory for downloaded audio")
}

func initConfig(cmd *cobra.Command) error {
	if cmd.Annotations[skipConfig] != "" {
		return nil
	}

	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return rerrors.WithSuggestion(fmt.Errorf("failed to load config: %w", err), "check the file with a TOML linter")
	}

	applyFlagOverrides(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	return nil
}

// applyFlagOverrides copies explicitly set flags over file and env values.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	if f := cmd.Flags().Lookup("sample-rate"); f != nil && f.Changed {
		c.Player.SampleRate = sampleRate
	}
	if f := cmd.Flags().Lookup("scratch-dir"); f != nil && f.Changed {
		c.Downloader.ScratchDir = scratchDir
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, rerrors.Format(err))
		os.Exit(1)
	}
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
