package youtube

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
)

// The provider errors below are never caused by origin blocking, so they
// report that explicitly instead of leaving it to the text heuristic.

// VideoUnavailableError is returned when YouTube refuses to play the video.
type VideoUnavailableError struct {
	VideoID string
	Status  string
	Reason  string
}

func (e *VideoUnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("video %s is unavailable (%s)", e.VideoID, e.Status)
	}
	return fmt.Sprintf("video %s is unavailable (%s): %s", e.VideoID, e.Status, e.Reason)
}

func (e *VideoUnavailableError) OriginBlocked() bool { return false }

// TranscriptsDisabledError is returned when a video has no caption tracks.
type TranscriptsDisabledError struct {
	VideoID string
}

func (e *TranscriptsDisabledError) Error() string {
	return fmt.Sprintf("subtitles are disabled for video %s", e.VideoID)
}

func (e *TranscriptsDisabledError) OriginBlocked() bool { return false }

// NoTranscriptFoundError is returned when none of the requested languages exist.
type NoTranscriptFoundError struct {
	VideoID   string
	Requested []string
	Available []string
}

func (e *NoTranscriptFoundError) Error() string {
	return fmt.Sprintf("no captions for video %s in [%s]; available: [%s]",
		e.VideoID, strings.Join(e.Requested, ", "), strings.Join(e.Available, ", "))
}

func (e *NoTranscriptFoundError) OriginBlocked() bool { return false }

// HTTPStatusError is a non-2xx response from YouTube. Body holds the start
// of the response body.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// OriginBlocked is true only for 403 and 429.
func (e *HTTPStatusError) OriginBlocked() bool {
	return e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusTooManyRequests
}

func (e *HTTPStatusError) Is(target error) bool {
	return target == transcript.ErrOriginBlocked && e.OriginBlocked()
}
