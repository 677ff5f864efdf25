package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/tessro/riffle/internal/core"
	rerrors "github.com/tessro/riffle/internal/errors"
	"github.com/tessro/riffle/internal/source"
)

// resampleQuality is passed to beep.Resample; 4 is beep's recommended default.
const resampleQuality = 4

// Stream is a decoded track ready for the playback queue.
type Stream struct {
	Track    core.Track
	Streamer beep.StreamSeekCloser
	Format   beep.Format
}

// Close releases the underlying decoder and file.
func (s *Stream) Close() error {
	if s == nil || s.Streamer == nil {
		return nil
	}
	return s.Streamer.Close()
}

// Decoder opens resolved files at a fixed output sample rate.
type Decoder struct {
	sampleRate beep.SampleRate
}

// NewDecoder creates a decoder that resamples everything to sampleRate.
func NewDecoder(sampleRate int) *Decoder {
	return &Decoder{sampleRate: beep.SampleRate(sampleRate)}
}

// Open decodes res into a stream.
func (d *Decoder) Open(res *source.Resolved) (*Stream, error) {
	s, err := Decode(res.Path, d.sampleRate)
	if err != nil {
		return nil, err
	}
	s.Track.Reference = res.Reference
	if res.Size > 0 {
		s.Track.Size = res.Size
	}
	return s, nil
}

// Decode opens path and picks a decoder by extension. When rate is non-zero
// and differs from the file's rate, the stream is resampled.
func Decode(path string, rate beep.SampleRate) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrNotFound, path)
	}

	streamer, format, err := decode(f, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", rerrors.ErrUnsupported, filepath.Base(path), err)
	}

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	track := core.Track{
		Title:    trackTitle(path),
		Path:     path,
		Duration: format.SampleRate.D(streamer.Len()),
		Size:     size,
	}

	var out beep.StreamSeekCloser = streamer
	if rate != 0 && format.SampleRate != rate {
		out = newResampled(streamer, format.SampleRate, rate)
	}

	return &Stream{
		Track:    track,
		Streamer: out,
		Format:   format,
	}, nil
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case ".flac":
		return flac.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".ogg", ".oga":
		return vorbis.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("no decoder for extension %q", ext)
	}
}

// trackTitle derives a display title from the file name.
func trackTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resampled adapts a resampler back to StreamSeekCloser so the queue can
// close and measure every entry the same way. Len, Position and Seek count
// samples at the output rate.
type resampled struct {
	*beep.Resampler
	src   beep.StreamSeekCloser
	ratio float64 // output samples per source sample
}

func newResampled(src beep.StreamSeekCloser, from, to beep.SampleRate) *resampled {
	return &resampled{
		Resampler: beep.Resample(resampleQuality, from, to, src),
		src:       src,
		ratio:     float64(to) / float64(from),
	}
}

func (r *resampled) Len() int      { return r.toOutput(r.src.Len()) }
func (r *resampled) Position() int { return r.toOutput(r.src.Position()) }
func (r *resampled) Seek(p int) error {
	return r.src.Seek(int(math.Round(float64(p) / r.ratio)))
}
func (r *resampled) Close() error { return r.src.Close() }

func (r *resampled) toOutput(n int) int {
	return int(math.Round(float64(n) * r.ratio))
}

var (
	_ beep.StreamSeekCloser = (*resampled)(nil)
	_ io.Closer             = (*Stream)(nil)
)
