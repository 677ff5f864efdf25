package playback

import (
	"sync"

	"github.com/tessro/riffle/internal/audio"
	"github.com/tessro/riffle/internal/core"
)

// Queue is the ordered set of pending and playing streams. The head entry is
// the one sounding. Queue is itself a beep.Streamer: the speaker pulls samples
// through Stream while the command loop calls the transport methods, so every
// method takes mu.
type Queue struct {
	mu      sync.Mutex
	entries []*audio.Stream
	paused  bool
	stopped bool
	nextID  uint64

	onFinish func(core.Track)
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// OnFinish registers fn to be called when an entry plays to its end.
// Skipped and cleared entries do not trigger it.
func (q *Queue) OnFinish(fn func(core.Track)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onFinish = fn
}

// Enqueue appends s. If the queue was empty, playback starts on s right away
// and started is true.
func (q *Queue) Enqueue(s *audio.Stream) (started bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		s.Close()
		return false
	}

	started = len(q.entries) == 0
	if started {
		q.paused = false
	}
	q.nextID++
	s.Track.ID = q.nextID
	q.entries = append(q.entries, s)
	return started
}

// Pause suspends the current entry.
func (q *Queue) Pause() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paused = true
}

// Resume continues the current entry.
func (q *Queue) Resume() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paused = false
}

// Toggle flips between paused and playing and returns the new paused state.
func (q *Queue) Toggle() (paused bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paused = !q.paused
	return q.paused
}

// Paused reports whether playback is paused.
func (q *Queue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// State returns the transport state.
func (q *Queue) State() core.State {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch {
	case q.stopped:
		return core.StateStopped
	case len(q.entries) == 0:
		return core.StateIdle
	case q.paused:
		return core.StatePaused
	default:
		return core.StatePlaying
	}
}

// Skip drops up to n entries from the head and returns how many were dropped.
// The paused flag is left as is.
func (q *Queue) Skip(n int) (skipped int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for skipped < n && len(q.entries) > 0 {
		q.popLocked()
		skipped++
	}
	return skipped
}

// Clear drops every entry, including the one sounding.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clearLocked()
}

// Stop clears the queue and silences it for good.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clearLocked()
	q.stopped = true
}

// Len returns the number of entries not yet finished, including the current one.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Snapshot returns a copy of the queue contents.
func (q *Queue) Snapshot() core.Queue {
	q.mu.Lock()
	defer q.mu.Unlock()

	tracks := make([]core.Track, len(q.entries))
	for i, e := range q.entries {
		tracks[i] = e.Track
	}
	return core.Queue{Tracks: tracks, Paused: q.paused}
}

// Stream fills samples from the head entry, moving on to the next entry when
// one drains. Whatever cannot be filled is silence, and the queue never
// reports itself drained.
func (q *Queue) Stream(samples [][2]float64) (n int, ok bool) {
	var finished []core.Track

	q.mu.Lock()
	for n < len(samples) && !q.paused && !q.stopped && len(q.entries) > 0 {
		head := q.entries[0]
		m, more := head.Streamer.Stream(samples[n:])
		n += m
		if !more || m == 0 {
			finished = append(finished, head.Track)
			q.popLocked()
		}
	}
	onFinish := q.onFinish
	q.mu.Unlock()

	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}

	if onFinish != nil {
		for _, t := range finished {
			onFinish(t)
		}
	}

	return len(samples), true
}

// Err always returns nil; decoder errors end the entry instead.
func (q *Queue) Err() error {
	return nil
}

func (q *Queue) popLocked() {
	head := q.entries[0]
	q.entries[0] = nil
	q.entries = q.entries[1:]
	head.Close()
}

func (q *Queue) clearLocked() {
	for _, e := range q.entries {
		e.Close()
	}
	q.entries = nil
}
