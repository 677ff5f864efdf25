package source

import (
	"bufio"
	"path/filepath"
	"strings"
)

const (
	destinationMarker = "[ExtractAudio] Destination: "

	// Printed instead of a destination when the download already has the target format.
	notConvertingMarker = "[ExtractAudio] Not converting audio "
	notConvertingSuffix = "; file is already in target format"
)

// FindArtifact scans a yt-dlp transcript for the extracted audio file and
// returns its path joined with dir. Absolute paths in the transcript are
// returned unchanged.
func FindArtifact(dir, transcript string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(transcript))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		var name string
		if _, after, ok := strings.Cut(line, destinationMarker); ok {
			name = after
		} else if _, after, ok := strings.Cut(line, notConvertingMarker); ok {
			before, _, found := strings.Cut(after, notConvertingSuffix)
			if !found {
				continue
			}
			name = before
		} else {
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if filepath.IsAbs(name) {
			return name, true
		}
		return filepath.Join(dir, name), true
	}

	return "", false
}
