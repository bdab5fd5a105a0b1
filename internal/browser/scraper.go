// Package browser recovers caption tracks by rendering the watch page in a
// headless Chrome driven by go-rod.
package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
	"github.com/bigexperiment/youtube-transcript-Api/internal/youtube"
)

const (
	defaultWatchURL = "https://www.youtube.com/watch?v="
	defaultTimeout  = 30 * time.Second

	playerResponseJS = `() => JSON.stringify(window.ytInitialPlayerResponse || null)`
)

var errNoPlayerResponse = errors.New("page has no ytInitialPlayerResponse")

// TrackFetcher downloads a caption track chosen from a scraped track list.
type TrackFetcher interface {
	FetchPreferred(ctx context.Context, videoID string, tracks []transcript.Track, languages []string) (*transcript.Transcript, error)
}

// Scraper implements transcript.PageScraper with a real browser.
type Scraper struct {
	Fetcher  TrackFetcher
	Logger   logrus.FieldLogger
	Bin      string // Chrome binary; empty lets rod find or download one
	WatchURL string
	Timeout  time.Duration
}

// NewScraper creates a Scraper that downloads captions through fetcher.
func NewScraper(fetcher TrackFetcher, logger logrus.FieldLogger, bin string) *Scraper {
	return &Scraper{
		Fetcher:  fetcher,
		Logger:   logger,
		Bin:      bin,
		WatchURL: defaultWatchURL,
		Timeout:  defaultTimeout,
	}
}

// Scrape opens the watch page, reads the player response the page script
// built, and fetches the best caption track from it.
func (s *Scraper) Scrape(ctx context.Context, videoID string, languages []string) (*transcript.Transcript, error) {
	raw, err := s.playerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}
	tracks, err := youtube.ParsePlayerResponse(videoID, []byte(raw))
	if err != nil {
		return nil, err
	}
	return s.Fetcher.FetchPreferred(ctx, videoID, tracks, languages)
}

func (s *Scraper) playerResponse(ctx context.Context, videoID string) (string, error) {
	l := launcher.New().Context(ctx).Headless(true)
	if s.Bin != "" {
		l = l.Bin(s.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return "", fmt.Errorf("connect to browser: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Debug("closing browser")
		}
	}()

	pageURL := s.WatchURL + url.QueryEscape(videoID)
	page, err := b.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", fmt.Errorf("open %s: %w", pageURL, err)
	}
	page = page.Timeout(s.Timeout)
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("load %s: %w", pageURL, err)
	}

	res, err := page.Eval(playerResponseJS)
	if err != nil {
		return "", fmt.Errorf("evaluate player response: %w", err)
	}
	raw := res.Value.Str()
	if raw == "" || raw == "null" {
		return "", errNoPlayerResponse
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"video_id": videoID, "bytes": len(raw)}).Debug("browser captured player response")
	}
	return raw, nil
}
