package playback

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output owns the default audio device.
type Output struct {
	sampleRate beep.SampleRate
}

// NewOutput initialises the speaker at sampleRate with the given buffer length.
func NewOutput(sampleRate int, buffer time.Duration) (*Output, error) {
	sr := beep.SampleRate(sampleRate)
	if buffer <= 0 {
		buffer = 250 * time.Millisecond
	}

	if err := speaker.Init(sr, sr.N(buffer)); err != nil {
		return nil, fmt.Errorf("failed to open audio output device: %w", err)
	}

	return &Output{sampleRate: sr}, nil
}

// SampleRate returns the device sample rate.
func (o *Output) SampleRate() int {
	return int(o.sampleRate)
}

// Attach starts pulling audio from q. The queue stays attached until Close.
func (o *Output) Attach(q *Queue) {
	speaker.Play(q)
}

// Close detaches all streamers and releases the device.
func (o *Output) Close() {
	speaker.Clear()
	speaker.Close()
}
