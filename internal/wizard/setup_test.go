package wizard

import (
	"testing"

	"github.com/tessro/riffle/internal/config"
)

func TestFormatRate(t *testing.T) {
	tests := map[int]string{
		44100: "44.1 kHz",
		48000: "48 kHz",
		96000: "96 kHz",
	}
	for in, want := range tests {
		if got := formatRate(in); got != want {
			t.Errorf("formatRate(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateBinary(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"yt-dlp", false},
		{"/usr/local/bin/yt-dlp", false},
		{"", true},
		{"   ", true},
	}
	for _, tt := range tests {
		if err := validateBinary(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateBinary(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestChoicesPassValidation(t *testing.T) {
	for _, r := range sampleRates {
		c := config.Default()
		c.Player.SampleRate = r
		if err := c.Validate(); err != nil {
			t.Errorf("sample rate %d rejected: %v", r, err)
		}
	}
	for _, f := range audioFormats {
		c := config.Default()
		c.Downloader.AudioFormat = f
		if err := c.Validate(); err != nil {
			t.Errorf("audio format %q rejected: %v", f, err)
		}
	}
}

func TestNewSetupForm(t *testing.T) {
	if NewSetupForm(config.Default()) == nil {
		t.Fatal("NewSetupForm() = nil")
	}
}
