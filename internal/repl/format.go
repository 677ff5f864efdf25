package repl

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tessro/riffle/internal/core"
)

// formatDuration formats a duration as m:ss or h:mm:ss.
func formatDuration(d time.Duration) string {
	seconds := int(d.Round(time.Second) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatSize formats a byte count, or "" when unknown.
func formatSize(n int64) string {
	if n <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(n))
}

// trackDetails returns the parenthesised detail suffix for a track.
func trackDetails(t core.Track) string {
	parts := []string{formatDuration(t.Duration)}
	if size := formatSize(t.Size); size != "" {
		parts = append(parts, size)
	}
	if t.Reference.IsRemote() {
		parts = append(parts, "remote")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
