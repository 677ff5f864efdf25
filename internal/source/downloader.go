package source

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	rerrors "github.com/tessro/riffle/internal/errors"
)

// DownloadOptions controls how remote audio is fetched and transcoded.
type DownloadOptions struct {
	Format      string   // yt-dlp -f selector, e.g. "bestaudio"
	AudioFormat string   // target container for -x, e.g. "flac"
	ExtraArgs   []string // passed through before the URL
}

// Download is the result of a successful fetch.
type Download struct {
	OutputDir  string
	Transcript string
}

// Downloader fetches a remote reference into dir.
type Downloader interface {
	Download(ctx context.Context, url, dir string, opts DownloadOptions) (*Download, error)
}

// YTDLP runs the yt-dlp binary.
type YTDLP struct {
	Binary string
}

// NewYTDLP creates a downloader for the given binary name or path.
func NewYTDLP(binary string) *YTDLP {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YTDLP{Binary: binary}
}

// Args returns the yt-dlp argument list for url.
func (y *YTDLP) Args(url string, opts DownloadOptions) []string {
	args := []string{}
	if opts.Format != "" {
		args = append(args, "-f", opts.Format)
	}
	args = append(args, "-x")
	if opts.AudioFormat != "" {
		args = append(args, "--audio-format", opts.AudioFormat)
	}
	args = append(args, "-o", "%(title)s [%(id)s].%(ext)s")
	args = append(args, opts.ExtraArgs...)
	args = append(args, "--", url)
	return args
}

// Download runs yt-dlp in dir and captures its stdout as the transcript.
func (y *YTDLP) Download(ctx context.Context, url, dir string, opts DownloadOptions) (*Download, error) {
	path, err := exec.LookPath(y.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrFetchInit, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, y.Args(url, opts)...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrFetchInit, err)
	}

	if err := cmd.Wait(); err != nil {
		msg := lastLine(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", rerrors.ErrFetchFailed, msg)
	}

	return &Download{
		OutputDir:  dir,
		Transcript: stdout.String(),
	}, nil
}

// lastLine returns the last non-empty line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

// Ensure YTDLP implements Downloader
var _ Downloader = (*YTDLP)(nil)
