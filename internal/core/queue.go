package core

// Queue is a point-in-time copy of the playback queue.
// The first track, if any, is the one currently sounding.
type Queue struct {
	Tracks []Track `json:"tracks"`
	Paused bool    `json:"paused"`
}

// Current returns the currently sounding track, or nil if the queue is empty.
func (q *Queue) Current() *Track {
	if q == nil || len(q.Tracks) == 0 {
		return nil
	}
	return &q.Tracks[0]
}

// Upcoming returns tracks after the current one.
func (q *Queue) Upcoming() []Track {
	if q == nil || len(q.Tracks) < 2 {
		return nil
	}
	return q.Tracks[1:]
}

// Len returns the total number of tracks in the queue.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}
