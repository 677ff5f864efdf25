package repl

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	Success   = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	TextMuted = lipgloss.Color("#9CA3AF") // Gray
)

// Styles holds the text styles for one output stream. Colors are dropped
// automatically when the stream is not a terminal.
type Styles struct {
	Error   lipgloss.Style
	Notice  lipgloss.Style
	Playing lipgloss.Style
	Paused  lipgloss.Style
}

// NewStyles creates styles rendered for w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Error:   r.NewStyle().Foreground(Error),
		Notice:  r.NewStyle().Foreground(TextMuted),
		Playing: r.NewStyle().Foreground(Success),
		Paused:  r.NewStyle().Foreground(Warning),
	}
}

// StatusIcon returns an icon for playback status
func (s Styles) StatusIcon(paused bool) string {
	if paused {
		return s.Paused.Render("⏸")
	}
	return s.Playing.Render("▶")
}
