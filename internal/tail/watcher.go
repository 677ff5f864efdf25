package tail

import (
	"context"
	"time"

	"github.com/tessro/riffle/internal/core"
)

// EventType represents the type of queue event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventTrackComplete
	EventTrackSkip
	EventPause
	EventResume
	EventQueueDrained
	EventStopped
)

// Snapshot is one observation of the queue.
type Snapshot struct {
	Queue core.Queue
	State core.State
}

// Event represents a queue state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *Snapshot
	Current   *Snapshot
	// Track is the entry the event is about: the new head for a change,
	// the departed head for a completion or skip.
	Track *core.Track
}

// Source is what the watcher polls.
type Source interface {
	Snapshot() core.Queue
	State() core.State
}

// Watcher polls a queue for state changes and emits events.
type Watcher struct {
	source   Source
	interval time.Duration
	events   chan Event
	done     chan struct{}
}

// NewWatcher creates a new queue watcher.
func NewWatcher(source Source, interval time.Duration) *Watcher {
	if interval == 0 {
		interval = 500 * time.Millisecond
	}
	return &Watcher{
		source:   source,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Events returns the channel of queue events. It is closed when Start returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start polls until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	prev := w.observe()
	w.emit(diffSnapshots(nil, prev, time.Now()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			curr := w.observe()
			w.emit(diffSnapshots(prev, curr, time.Now()))
			prev = curr
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) observe() *Snapshot {
	return &Snapshot{Queue: w.source.Snapshot(), State: w.source.State()}
}

func (w *Watcher) emit(events []Event) {
	for _, e := range events {
		select {
		case w.events <- e:
		default:
			// Drop event if channel is full
		}
	}
}

// diffSnapshots compares two observations and returns detected events.
func diffSnapshots(prev, curr *Snapshot, now time.Time) []Event {
	if curr == nil {
		return nil
	}

	// First poll
	if prev == nil {
		if head := curr.Queue.Current(); head != nil {
			return []Event{{Type: EventTrackChange, Timestamp: now, Current: curr, Track: head}}
		}
		return nil
	}

	var events []Event
	event := func(t EventType, track *core.Track) {
		events = append(events, Event{Type: t, Timestamp: now, Previous: prev, Current: curr, Track: track})
	}

	if curr.State == core.StateStopped {
		if prev.State != core.StateStopped {
			event(EventStopped, nil)
		}
		return events
	}

	prevHead, currHead := prev.Queue.Current(), curr.Queue.Current()
	if headChanged(prevHead, currHead) {
		if prevHead != nil {
			if wasCompleted(prev.Queue, curr.Queue) {
				event(EventTrackComplete, prevHead)
			} else {
				event(EventTrackSkip, prevHead)
			}
		}
		if currHead != nil {
			event(EventTrackChange, currHead)
		} else {
			event(EventQueueDrained, nil)
		}
	}

	if currHead != nil && prevHead != nil && !headChanged(prevHead, currHead) {
		if !prev.Queue.Paused && curr.Queue.Paused {
			event(EventPause, currHead)
		} else if prev.Queue.Paused && !curr.Queue.Paused {
			event(EventResume, currHead)
		}
	}

	return events
}

// headChanged returns true if the sounding entry changed.
func headChanged(prev, curr *core.Track) bool {
	if prev == nil && curr == nil {
		return false
	}
	if prev == nil || curr == nil {
		return true
	}
	return prev.ID != curr.ID
}

// wasCompleted returns true if the old head likely played to its end. A head
// that was paused, or whose successor is gone too, was skipped or cleared.
func wasCompleted(prev, curr core.Queue) bool {
	if prev.Paused {
		return false
	}
	upcoming := prev.Upcoming()
	if len(upcoming) == 0 {
		return len(curr.Tracks) == 0
	}
	if len(curr.Tracks) == 0 {
		return false
	}
	return curr.Tracks[0].ID == upcoming[0].ID
}
