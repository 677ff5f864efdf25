package tail

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a single line.
func (f *Formatter) Format(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, describe(e))

	return strings.Join(parts, " ")
}

// Log writes each event from events to log until the channel closes.
func Log(events <-chan Event, log zerolog.Logger, f *Formatter) {
	for e := range events {
		ev := log.Debug().Str("event", EventTypeName(e.Type))
		if e.Track != nil {
			ev = ev.Uint64("id", e.Track.ID).Str("title", e.Track.Title)
		}
		ev.Msg(f.Format(e))
	}
}

// describe returns a human-readable description of the event.
func describe(e Event) string {
	title := ""
	if e.Track != nil {
		title = e.Track.Title
	}

	switch e.Type {
	case EventTrackChange:
		if title != "" {
			return fmt.Sprintf("Now playing: %s", title)
		}
		return "Track changed"
	case EventTrackComplete:
		if title != "" {
			return fmt.Sprintf("Finished: %s", title)
		}
		return "Track completed"
	case EventTrackSkip:
		if title != "" {
			return fmt.Sprintf("Skipped: %s", title)
		}
		return "Track skipped"
	case EventPause:
		return "Paused"
	case EventResume:
		return "Resumed"
	case EventQueueDrained:
		return "Queue drained"
	case EventStopped:
		return "Stopped"
	default:
		return "Unknown event"
	}
}

// eventEmoji returns an emoji for the event type.
func eventEmoji(t EventType) string {
	switch t {
	case EventTrackChange:
		return "🎵"
	case EventTrackComplete:
		return "✅"
	case EventTrackSkip:
		return "⏭️"
	case EventPause:
		return "⏸️"
	case EventResume:
		return "▶️"
	case EventQueueDrained:
		return "📭"
	case EventStopped:
		return "⏹️"
	default:
		return "❓"
	}
}

// EventTypeName returns the name of the event type.
func EventTypeName(t EventType) string {
	switch t {
	case EventTrackChange:
		return "track_change"
	case EventTrackComplete:
		return "track_complete"
	case EventTrackSkip:
		return "track_skip"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventQueueDrained:
		return "queue_drained"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
