package core

import "time"

// Kind indicates where an audio reference points.
type Kind string

const (
	KindLocal  Kind = "local"
	KindRemote Kind = "remote"
)

// Reference is a user-supplied audio reference after classification.
type Reference struct {
	Raw  string `json:"raw"`
	Kind Kind   `json:"kind"`
}

// IsRemote returns true if the reference must be fetched before playing.
func (r Reference) IsRemote() bool {
	return r.Kind == KindRemote
}

// Track describes a decoded audio stream.
type Track struct {
	// ID is assigned by the playback queue and is unique per enqueued entry.
	ID        uint64        `json:"id"`
	Title     string        `json:"title"`
	Path      string        `json:"path"`
	Reference Reference     `json:"reference"`
	Duration  time.Duration `json:"duration"`
	Size      int64         `json:"size"`
}
