// Package videoid turns user supplied YouTube references into video IDs.
package videoid

import (
	"regexp"
	"strings"
)

// patterns are tried in order; the first capture group is the video ID.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#]+)`),
}

// Resolve extracts the video ID from a YouTube URL. A reference that does not
// mention youtube.com or youtu.be is assumed to already be an ID and is
// returned unchanged. The boolean is false when a YouTube URL carries no
// recognisable ID.
func Resolve(reference string) (string, bool) {
	if !IsURL(reference) {
		return reference, true
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(reference); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}

// IsURL reports whether reference looks like a YouTube URL rather than a bare ID.
func IsURL(reference string) bool {
	return strings.Contains(reference, "youtube.com") || strings.Contains(reference, "youtu.be")
}
