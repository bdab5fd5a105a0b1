package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
)

// playerResponseMarker marks the start of the player response JSON in watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

var (
	recaptchaMarker = []byte(`class="g-recaptcha"`)
	consentMarker   = []byte(`action="https://consent.youtube.com/s"`)
)

// Scrape reads the caption tracks embedded in the watch page and fetches the
// best one for languages, falling back to the first usable track.
func (c *Client) Scrape(ctx context.Context, videoID string, languages []string) (*transcript.Transcript, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.watchURL+url.QueryEscape(videoID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	page, err := c.do(req, maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page for %s: %w", videoID, err)
	}

	data, err := extractPlayerResponse(page)
	if err != nil {
		return nil, fmt.Errorf("watch page for %s: %w", videoID, err)
	}
	tracks, err := ParsePlayerResponse(videoID, data)
	if err != nil {
		return nil, err
	}
	return c.FetchPreferred(ctx, videoID, tracks, languages)
}

func extractPlayerResponse(page []byte) ([]byte, error) {
	if bytes.Contains(page, recaptchaMarker) {
		return nil, fmt.Errorf("%w: captcha challenge served", transcript.ErrOriginBlocked)
	}
	idx := bytes.Index(page, []byte(playerResponseMarker))
	if idx < 0 {
		if bytes.Contains(page, consentMarker) {
			return nil, errors.New("consent page served instead of the video")
		}
		return nil, errors.New("ytInitialPlayerResponse not found")
	}
	data := extractJSON(page[idx+len(playerResponseMarker):])
	if data == nil {
		return nil, errors.New("malformed ytInitialPlayerResponse")
	}
	return data, nil
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
