package wizard

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/tessro/riffle/internal/config"
)

// IsTerminal returns true if both stdin and stdout are terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var sampleRates = []int{44100, 48000, 96000}

var audioFormats = []string{"flac", "mp3", "wav", "vorbis"}

// NewSetupForm builds a form whose fields write straight into cfg.
func NewSetupForm(cfg *config.Config) *huh.Form {
	rates := make([]huh.Option[int], 0, len(sampleRates))
	for _, r := range sampleRates {
		rates = append(rates, huh.NewOption(formatRate(r), r))
	}

	formats := make([]huh.Option[string], 0, len(audioFormats))
	for _, f := range audioFormats {
		formats = append(formats, huh.NewOption(f, f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Output sample rate").
				Description("Files at other rates are resampled").
				Options(rates...).
				Value(&cfg.Player.SampleRate),
			huh.NewInput().
				Title("Prompt").
				Value(&cfg.Player.Prompt),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("yt-dlp binary").
				Description("Name on PATH or absolute path").
				Value(&cfg.Downloader.Binary).
				Validate(validateBinary),
			huh.NewSelect[string]().
				Title("Download audio format").
				Options(formats...).
				Value(&cfg.Downloader.AudioFormat),
		),
	)
}

// RunSetup asks for the main settings, starting from the values in cfg.
func RunSetup(cfg *config.Config) error {
	if err := NewSetupForm(cfg).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("setup cancelled")
		}
		return err
	}
	return nil
}

func validateBinary(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("binary is required")
	}
	return nil
}

func formatRate(hz int) string {
	return fmt.Sprintf("%g kHz", float64(hz)/1000)
}
