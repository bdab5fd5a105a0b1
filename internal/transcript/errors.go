package transcript

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTranscriptUnavailable matches the error returned when every strategy failed.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrOriginBlocked is wrapped by providers that can tell the request was
	// rejected because of where it came from.
	ErrOriginBlocked = errors.New("request blocked by youtube")

	// ErrNoMatchingTrack is returned when none of the requested languages is available.
	ErrNoMatchingTrack = errors.New("no transcript in the requested languages")

	// ErrNoTracks is returned when the provider lists no transcripts at all.
	ErrNoTracks = errors.New("no transcripts listed for video")
)

// UnavailableNote accompanies exhaustion errors at the HTTP boundary.
const UnavailableNote = "This might be due to YouTube API changes or network issues"

// UnavailableError reports that no strategy produced a transcript. Err holds
// the failure of the last strategy tried.
type UnavailableError struct {
	VideoID string
	Err     error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("could not retrieve a transcript for %s after trying every method; "+
		"YouTube is most likely blocking requests from this server's IP address, "+
		"try again from a different network", e.VideoID)
	if e.Err != nil {
		msg += " (last error: " + e.Err.Error() + ")"
	}
	return msg
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrTranscriptUnavailable }

// Suggestions lists what a caller can do about an exhausted fetch.
func (e *UnavailableError) Suggestions() []string {
	return []string{
		"Retry the request from a different network, such as a residential connection",
		"Deploy the service to a different hosting provider or region",
		"Route outbound requests through a proxy with the PROXY_URL setting",
	}
}

// OriginClassifier is implemented by provider errors that know whether they
// were caused by origin blocking.
type OriginClassifier interface {
	OriginBlocked() bool
}

// IsOriginBlocked reports whether err looks like the provider rejecting the
// caller's network origin. Typed errors are trusted first; otherwise the
// error text is searched for "blocked" or "ip".
func IsOriginBlocked(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrOriginBlocked) {
		return true
	}
	var c OriginClassifier
	if errors.As(err, &c) {
		return c.OriginBlocked()
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "blocked") || strings.Contains(msg, "ip")
}
