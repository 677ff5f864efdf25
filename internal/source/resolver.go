package source

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/tessro/riffle/internal/core"
	rerrors "github.com/tessro/riffle/internal/errors"
)

// Resolved is a local audio file ready for decoding.
type Resolved struct {
	Path      string
	Reference core.Reference
	Size      int64
}

// Resolver turns audio references into local files.
// Remote references are downloaded into the scratch directory.
type Resolver struct {
	downloader Downloader
	scratch    *Scratch
	opts       DownloadOptions
	log        zerolog.Logger
}

// NewResolver creates a resolver that fetches remote references with d into scratch.
func NewResolver(d Downloader, scratch *Scratch, opts DownloadOptions, log zerolog.Logger) *Resolver {
	return &Resolver{
		downloader: d,
		scratch:    scratch,
		opts:       opts,
		log:        log.With().Str("component", "resolver").Logger(),
	}
}

// Resolve returns the local file for ref. Remote references block until the
// download finishes.
func (r *Resolver) Resolve(ctx context.Context, ref core.Reference) (*Resolved, error) {
	path := ref.Raw
	if ref.IsRemote() {
		var err error
		path, err = r.fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
	}

	size, err := checkReadable(path)
	if err != nil {
		r.log.Debug().Err(err).Str("path", path).Msg("reference not readable")
		return nil, err
	}

	return &Resolved{
		Path:      path,
		Reference: ref,
		Size:      size,
	}, nil
}

func (r *Resolver) fetch(ctx context.Context, ref core.Reference) (string, error) {
	if r.downloader == nil || r.scratch == nil {
		return "", fmt.Errorf("%w: no downloader configured", rerrors.ErrFetchInit)
	}

	r.log.Debug().Str("url", ref.Raw).Str("id", VideoID(ref)).Str("dir", r.scratch.Dir()).Msg("downloading")

	dl, err := r.downloader.Download(ctx, ref.Raw, r.scratch.Dir(), r.opts)
	if err != nil {
		r.log.Debug().Err(err).Str("url", ref.Raw).Msg("download failed")
		return "", err
	}

	path, ok := FindArtifact(dl.OutputDir, dl.Transcript)
	if !ok {
		r.log.Debug().Str("url", ref.Raw).Int("transcript_bytes", len(dl.Transcript)).Msg("no extracted audio in transcript")
		return "", fmt.Errorf("%w: %s", rerrors.ErrArtifactNotFound, ref.Raw)
	}

	r.log.Debug().Str("url", ref.Raw).Str("path", path).Msg("download complete")
	return path, nil
}

// checkReadable opens path to confirm it is a readable regular file.
func checkReadable(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", rerrors.ErrNotFound, displayPath(path))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return 0, fmt.Errorf("%w: %s", rerrors.ErrNotFound, displayPath(path))
	}
	return info.Size(), nil
}

func displayPath(path string) string {
	if path == "" {
		return `""`
	}
	return path
}
