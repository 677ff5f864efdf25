package source

import (
	"regexp"

	"github.com/tessro/riffle/internal/core"
)

// remoteLink matches YouTube watch and short links carrying an 11-character video id.
// The match is unanchored, so a link embedded in a longer string still counts as remote.
var remoteLink = regexp.MustCompile(`(http:|https:)?(//)?(www\.)?(youtube\.com|youtu\.be)/(watch\?v=)?([a-zA-Z0-9_-]{11})`)

// Classify decides whether raw names a remote link or a local path.
func Classify(raw string) core.Reference {
	kind := core.KindLocal
	if remoteLink.MatchString(raw) {
		kind = core.KindRemote
	}
	return core.Reference{Raw: raw, Kind: kind}
}

// VideoID returns the video id of a remote reference, or "" for local ones.
func VideoID(ref core.Reference) string {
	if !ref.IsRemote() {
		return ""
	}
	m := remoteLink.FindStringSubmatch(ref.Raw)
	if m == nil {
		return ""
	}
	return m[6]
}
