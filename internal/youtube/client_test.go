package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
)

const sampleTimedText = `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.24" dur="2.1">Hey &amp;#39;everyone&amp;#39;</text>
<text start="2.34" dur="1.5">&lt;font color=&quot;#E5E5E5&quot;&gt;welcome back&lt;/font&gt;</text>
<text start="3.84" dur="0.5"></text>
<text start="4.34">fish &amp;amp; chips</text>
</transcript>`

// fakeYouTube serves the player endpoint, caption files and a watch page.
type fakeYouTube struct {
	t           *testing.T
	server      *httptest.Server
	playerJSON  func(videoID string) string
	playerCode  int
	errorBody   string
	watchPage   string
	playerCalls int
}

func newFakeYouTube(t *testing.T) *fakeYouTube {
	f := &fakeYouTube{t: t, playerCode: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		f.playerCalls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "3", r.Header.Get("X-Youtube-Client-Name"))
		var req innertubeReq
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ANDROID", req.Context.Client.ClientName)
		if f.playerCode != http.StatusOK {
			w.WriteHeader(f.playerCode)
			_, _ = io.WriteString(w, f.errorBody)
			return
		}
		_, _ = io.WriteString(w, f.playerJSON(req.VideoID))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("fmt"), "fmt should be stripped")
		switch r.URL.Query().Get("lang") {
		case "broken":
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = io.WriteString(w, sampleTimedText)
		}
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, f.watchPage)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeYouTube) client() *Client {
	return NewClient(
		WithHTTPClient(f.server.Client()),
		WithPlayerURL(f.server.URL+"/youtubei/v1/player"),
		WithWatchURL(f.server.URL+"/watch?v="),
	)
}

func (f *fakeYouTube) track(lang, kind string) string {
	return fmt.Sprintf(`{"baseUrl":"%s/api/timedtext?v=x&lang=%s&fmt=srv3","name":{"simpleText":"%s"},"languageCode":"%s","kind":"%s"}`,
		f.server.URL, lang, lang+" name", lang, kind)
}

func (f *fakeYouTube) playerWith(tracks ...string) func(string) string {
	return func(string) string {
		return `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
			strings.Join(tracks, ",") + `]}}}`
	}
}

func TestClientList(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerJSON = f.playerWith(f.track("en", "asr"), f.track("de", ""))

	tracks, err := f.client().List(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "en", tracks[0].LanguageCode)
	assert.Equal(t, "en name", tracks[0].Language)
	assert.True(t, tracks[0].IsGenerated)
	assert.Equal(t, "de", tracks[1].LanguageCode)
	assert.False(t, tracks[1].IsGenerated)
}

func TestClientFetch(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerJSON = f.playerWith(f.track("de", ""), f.track("en-GB", ""))

	got, err := f.client().Fetch(context.Background(), "abc", []string{"en", "en-GB"})
	require.NoError(t, err)
	assert.Equal(t, "abc", got.VideoID)
	assert.Equal(t, "en-GB", got.LanguageCode)
	require.Len(t, got.Segments, 3)
	assert.Equal(t, "Hey 'everyone'", got.Segments[0].Text)
	assert.InDelta(t, 0.24, got.Segments[0].Start, 1e-9)
	assert.InDelta(t, 2.1, got.Segments[0].Duration, 1e-9)
	assert.Equal(t, "welcome back", got.Segments[1].Text)
	assert.Equal(t, "fish & chips", got.Segments[2].Text)
	assert.Zero(t, got.Segments[2].Duration)
}

func TestClientFetchNoMatchingLanguage(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerJSON = f.playerWith(f.track("de", ""))

	_, err := f.client().Fetch(context.Background(), "abc", []string{"en"})
	var notFound *NoTranscriptFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"de"}, notFound.Available)
	assert.False(t, transcript.IsOriginBlocked(err))
}

func TestClientListErrors(t *testing.T) {
	tests := []struct {
		name        string
		player      string
		code        int
		wantBlocked bool
		check       func(t *testing.T, err error)
	}{
		{
			name:   "captions disabled",
			player: `{"playabilityStatus":{"status":"OK"}}`,
			code:   http.StatusOK,
			check: func(t *testing.T, err error) {
				var disabled *TranscriptsDisabledError
				assert.ErrorAs(t, err, &disabled)
			},
		},
		{
			name:   "video unavailable",
			player: `{"playabilityStatus":{"status":"ERROR","reason":"This video is unavailable"}}`,
			code:   http.StatusOK,
			check: func(t *testing.T, err error) {
				var unavailable *VideoUnavailableError
				require.ErrorAs(t, err, &unavailable)
				assert.Equal(t, "ERROR", unavailable.Status)
			},
		},
		{
			name:        "bot check",
			player:      `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"Sign in to confirm you're not a bot"}}`,
			code:        http.StatusOK,
			wantBlocked: true,
		},
		{
			name:        "rate limited",
			code:        http.StatusTooManyRequests,
			wantBlocked: true,
		},
		{
			name:        "forbidden",
			code:        http.StatusForbidden,
			wantBlocked: true,
		},
		{
			name: "server error",
			code: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "HTTP 500")
				var status *HTTPStatusError
				require.ErrorAs(t, err, &status)
				assert.Equal(t, http.StatusInternalServerError, status.StatusCode)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeYouTube(t)
			f.playerCode = tt.code
			f.playerJSON = func(string) string { return tt.player }

			_, err := f.client().List(context.Background(), "abc")
			require.Error(t, err)
			assert.Equal(t, tt.wantBlocked, transcript.IsOriginBlocked(err))
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestClientServerErrorIsNotOriginBlocked(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerCode = http.StatusInternalServerError
	f.errorBody = `<html><script>ip blocked? backend error</script></html>`

	_, err := f.client().List(context.Background(), "aBcIPxyz123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aBcIPxyz123")
	assert.NotErrorIs(t, err, transcript.ErrOriginBlocked)
	assert.False(t, transcript.IsOriginBlocked(err))
}

func TestOrchestratorDoesNotRetryServerErrors(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerCode = http.StatusInternalServerError
	f.errorBody = "backend error"

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var sleeps []time.Duration
	o := transcript.New(f.client(),
		transcript.WithLogger(logger),
		transcript.WithSleep(func(_ context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		}),
	)
	_, err := o.Fetch(context.Background(), "aBcIPxyz123")

	var unavailable *transcript.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Empty(t, sleeps)
}

func TestHTTPStatusErrorClassification(t *testing.T) {
	tests := []struct {
		code    int
		blocked bool
	}{
		{http.StatusForbidden, true},
		{http.StatusTooManyRequests, true},
		{http.StatusNotFound, false},
		{http.StatusInternalServerError, false},
		{http.StatusServiceUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := fmt.Errorf("player request for aBcIPxyz123: %w", &HTTPStatusError{StatusCode: tt.code})
			assert.Equal(t, tt.blocked, transcript.IsOriginBlocked(err))
			assert.Equal(t, tt.blocked, errors.Is(err, transcript.ErrOriginBlocked))
		})
	}
}

func TestClientFetchTrackErrors(t *testing.T) {
	f := newFakeYouTube(t)
	c := f.client()

	_, err := c.FetchTrack(context.Background(), "abc", transcript.Track{
		LanguageCode: "en",
		BaseURL:      f.server.URL + "/api/timedtext?lang=en&exp=xpe",
	})
	assert.ErrorContains(t, err, "PoToken")

	_, err = c.FetchTrack(context.Background(), "abc", transcript.Track{
		LanguageCode: "broken",
		BaseURL:      f.server.URL + "/api/timedtext?lang=broken",
	})
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestClientScrape(t *testing.T) {
	f := newFakeYouTube(t)
	player := f.playerWith(f.track("fr", ""), f.track("en-US", "asr"))("abc")
	f.watchPage = `<html><script>var ytInitialPlayerResponse = ` + player + `;var meta = {};</script></html>`

	got, err := f.client().Scrape(context.Background(), "abc", []string{"en", "en-US"})
	require.NoError(t, err)
	assert.Equal(t, "en-US", got.LanguageCode)
	assert.True(t, got.IsGenerated)
	assert.Zero(t, f.playerCalls)
}

func TestClientScrapeFallsBackToFirstTrack(t *testing.T) {
	f := newFakeYouTube(t)
	player := f.playerWith(f.track("fr", ""))("abc")
	f.watchPage = `<script>ytInitialPlayerResponse = ` + player + `;</script>`

	got, err := f.client().Scrape(context.Background(), "abc", []string{"en"})
	require.NoError(t, err)
	assert.Equal(t, "fr", got.LanguageCode)
}

func TestClientScrapeErrors(t *testing.T) {
	tests := []struct {
		name        string
		page        string
		wantBlocked bool
		wantMsg     string
	}{
		{"captcha", `<form><div class="g-recaptcha"></div></form>`, true, "captcha"},
		{"consent", `<form action="https://consent.youtube.com/s"></form>`, false, "consent"},
		{"missing", `<html></html>`, false, "not found"},
		{"truncated", `ytInitialPlayerResponse = {"captions":{`, false, "malformed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeYouTube(t)
			f.watchPage = tt.page
			_, err := f.client().Scrape(context.Background(), "abc", []string{"en"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			if tt.wantBlocked {
				assert.ErrorIs(t, err, transcript.ErrOriginBlocked)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1};rest`, `{"a":1}`},
		{`{"a":"}"} trailing`, `{"a":"}"}`},
		{`{"a":"quote \" {"}x`, `{"a":"quote \" {"}`},
		{`{"a":"backslash \\"}x`, `{"a":"backslash \\"}`},
		{`{"a":{"b":{}}}}`, `{"a":{"b":{}}}`},
		{`not json`, ``},
		{`{"open":`, ``},
	}
	for _, tt := range tests {
		got := extractJSON([]byte(tt.in))
		assert.Equal(t, tt.want, string(got), tt.in)
	}
}

func TestNewHTTPClient(t *testing.T) {
	hc, err := NewHTTPClient(0, "http://proxy.internal:3128")
	require.NoError(t, err)
	transport, ok := hc.Transport.(*http.Transport)
	require.True(t, ok)
	req := httptest.NewRequest(http.MethodGet, "https://www.youtube.com/", nil)
	proxy, err := transport.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy.internal:3128", proxy.Host)

	_, err = NewHTTPClient(0, "://bad")
	assert.Error(t, err)
}
