// Package youtube implements the transcript provider against YouTube's
// InnerTube player API, timedtext caption files and watch pages.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
)

const (
	maxPlayerBytes    = 3 * 1024 * 1024
	maxTimedTextBytes = 2 * 1024 * 1024
	maxWatchPageBytes = 6 * 1024 * 1024
	maxErrorSnippet   = 256
)

// Client talks to YouTube. It satisfies transcript.Provider and
// transcript.PageScraper.
type Client struct {
	httpClient *http.Client
	playerURL  string
	watchURL   string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPlayerURL overrides the InnerTube player endpoint.
func WithPlayerURL(u string) Option {
	return func(c *Client) { c.playerURL = u }
}

// WithWatchURL overrides the watch page prefix the video ID is appended to.
func WithWatchURL(u string) Option {
	return func(c *Client) { c.watchURL = u }
}

// WithUserAgent sets the user agent for watch page and caption requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient returns a Client with YouTube's public endpoints.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		playerURL:  defaultPlayerURL,
		watchURL:   defaultWatchURL,
		userAgent:  browserUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient builds the outbound client, optionally routed through proxyURL.
func NewHTTPClient(timeout time.Duration, proxyURL string) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     60 * time.Second,
	}
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(u)
	}
	return &http.Client{Timeout: timeout, Transport: transport}, nil
}

// List returns every caption track YouTube reports for the video.
func (c *Client) List(ctx context.Context, videoID string) ([]transcript.Track, error) {
	body, err := json.Marshal(newPlayerRequest(videoID))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.playerURL+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidClientVersion)

	data, err := c.do(req, maxPlayerBytes)
	if err != nil {
		return nil, fmt.Errorf("player request for %s: %w", videoID, err)
	}

	var resp playerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode player response for %s: %w", videoID, err)
	}
	return resp.tracks(videoID)
}

// Fetch returns the transcript for the first of languages the video has.
func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) (*transcript.Transcript, error) {
	tracks, err := c.List(ctx, videoID)
	if err != nil {
		return nil, err
	}
	track, ok := transcript.SelectTrack(tracks, languages)
	if !ok {
		return nil, &NoTranscriptFoundError{
			VideoID:   videoID,
			Requested: languages,
			Available: transcript.LanguageCodes(tracks),
		}
	}
	return c.FetchTrack(ctx, videoID, track)
}

// FetchTrack downloads and parses one caption track.
func (c *Client) FetchTrack(ctx context.Context, videoID string, track transcript.Track) (*transcript.Transcript, error) {
	if needsPoToken(track.BaseURL) {
		return nil, fmt.Errorf("caption track %s of %s requires a PoToken", track.LanguageCode, videoID)
	}
	captionURL, err := timedTextURL(track.BaseURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	data, err := c.do(req, maxTimedTextBytes)
	if err != nil {
		return nil, fmt.Errorf("timedtext %s for %s: %w", track.LanguageCode, videoID, err)
	}

	segments, err := ParseTimedText(data)
	if err != nil {
		return nil, fmt.Errorf("timedtext %s for %s: %w", track.LanguageCode, videoID, err)
	}

	return &transcript.Transcript{
		VideoID:      videoID,
		Language:     track.Language,
		LanguageCode: track.LanguageCode,
		IsGenerated:  track.IsGenerated,
		Segments:     segments,
	}, nil
}

// FetchPreferred fetches the best track for languages, or the first usable
// track when none of them is available.
func (c *Client) FetchPreferred(ctx context.Context, videoID string, tracks []transcript.Track, languages []string) (*transcript.Transcript, error) {
	usable := make([]transcript.Track, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("no usable caption tracks for %s", videoID)
	}
	track, ok := transcript.SelectTrack(usable, languages)
	if !ok {
		track = usable[0]
	}
	return c.FetchTrack(ctx, videoID, track)
}

// do executes req and returns at most limit bytes of a 2xx body.
func (c *Client) do(req *http.Request, limit int64) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippet))
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, errors.New("response body too large")
	}
	return data, nil
}

// needsPoToken reports whether a caption track URL can only be fetched by a browser.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// timedTextURL drops any fmt parameter so YouTube answers with the classic XML format.
func timedTextURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse caption url: %w", err)
	}
	q := u.Query()
	if q.Has("fmt") {
		q.Del("fmt")
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
