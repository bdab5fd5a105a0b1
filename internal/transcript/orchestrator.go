package transcript

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// Strategy names one retrieval approach in the fallback chain.
type Strategy string

const (
	StrategyDirect           Strategy = "direct"
	StrategyLanguageFallback Strategy = "language_fallback"
	StrategyListSelect       Strategy = "list_select"
	StrategyListFirst        Strategy = "list_first"
	StrategyPageScrape       Strategy = "page_scrape"
)

// Strategies lists every strategy in the order the orchestrator tries them.
func Strategies() []Strategy {
	return []Strategy{
		StrategyDirect,
		StrategyLanguageFallback,
		StrategyListSelect,
		StrategyListFirst,
		StrategyPageScrape,
	}
}

var (
	// PrimaryLanguages is requested by the direct strategy.
	PrimaryLanguages = []string{"en"}
	// FallbackLanguages is the preference order used by the later strategies.
	FallbackLanguages = []string{"en", "en-US", "en-GB"}
)

const (
	DefaultMaxAttempts   = 3
	DefaultRetryMinDelay = 1 * time.Second
	DefaultRetryMaxDelay = 3 * time.Second
)

var errEmptyResult = errors.New("provider returned no transcript")

// Observer receives orchestration outcomes. Implementations must be safe for
// concurrent use.
type Observer interface {
	StrategySucceeded(strategy string)
	OriginBlockedRetry()
	Exhausted()
}

type noopObserver struct{}

func (noopObserver) StrategySucceeded(string) {}
func (noopObserver) OriginBlockedRetry()      {}
func (noopObserver) Exhausted()               {}

// Orchestrator runs the strategy chain. It holds no per-request state and is
// safe to share between goroutines.
type Orchestrator struct {
	provider    Provider
	scraper     PageScraper
	logger      logrus.FieldLogger
	observer    Observer
	maxAttempts int
	minDelay    time.Duration
	maxDelay    time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	jitter      func(lo, hi time.Duration) time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPageScraper enables the page scrape strategy.
func WithPageScraper(s PageScraper) Option {
	return func(o *Orchestrator) { o.scraper = s }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

// WithMaxAttempts bounds the direct strategy. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(o *Orchestrator) {
		if n >= 1 {
			o.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the bounds of the randomized wait between blocked attempts.
func WithRetryDelay(lo, hi time.Duration) Option {
	return func(o *Orchestrator) {
		o.minDelay = lo
		o.maxDelay = hi
	}
}

// WithSleep replaces the context-aware sleep used between attempts.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(o *Orchestrator) { o.sleep = fn }
}

// WithJitter replaces the delay picker.
func WithJitter(fn func(lo, hi time.Duration) time.Duration) Option {
	return func(o *Orchestrator) { o.jitter = fn }
}

// New creates an Orchestrator over provider.
func New(provider Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider:    provider,
		logger:      logrus.StandardLogger(),
		observer:    noopObserver{},
		maxAttempts: DefaultMaxAttempts,
		minDelay:    DefaultRetryMinDelay,
		maxDelay:    DefaultRetryMaxDelay,
		sleep:       sleepContext,
		jitter:      uniformDelay,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type step struct {
	name Strategy
	run  func(ctx context.Context, videoID string) (*Transcript, error)
}

func (o *Orchestrator) steps() []step {
	steps := []step{
		{StrategyDirect, o.fetchDirect},
		{StrategyLanguageFallback, o.fetchLanguageFallback},
		{StrategyListSelect, o.fetchListSelect},
		{StrategyListFirst, o.fetchListFirst},
	}
	if o.scraper != nil {
		steps = append(steps, step{StrategyPageScrape, o.fetchPageScrape})
	}
	return steps
}

// Fetch returns the transcript from the first strategy that succeeds. When all
// of them fail the error is an *UnavailableError. Context cancellation stops
// the chain and comes back wrapped, without the exhaustion diagnostic.
func (o *Orchestrator) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	log := o.logger.WithField("video_id", videoID)

	var lastErr error
	for _, s := range o.steps() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch transcript %s: %w", videoID, err)
		}

		t, err := s.run(ctx, videoID)
		if err == nil && t == nil {
			err = errEmptyResult
		}
		if err == nil {
			if t.VideoID == "" {
				t.VideoID = videoID
			}
			log.WithFields(logrus.Fields{
				"strategy": s.name,
				"language": t.LanguageCode,
				"segments": len(t.Segments),
			}).Debug("transcript fetched")
			o.observer.StrategySucceeded(string(s.name))
			return t, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch transcript %s: %w", videoID, ctxErr)
		}
		lastErr = err
		log.WithFields(logrus.Fields{
			"strategy": s.name,
			"error":    err.Error(),
		}).Warn("transcript strategy failed")
	}

	o.observer.Exhausted()
	return nil, &UnavailableError{VideoID: videoID, Err: lastErr}
}

// fetchDirect asks for the primary language, retrying only while the
// provider appears to block our origin.
func (o *Orchestrator) fetchDirect(ctx context.Context, videoID string) (*Transcript, error) {
	for attempt := 1; ; attempt++ {
		t, err := o.provider.Fetch(ctx, videoID, PrimaryLanguages)
		if err == nil {
			return t, nil
		}
		if attempt >= o.maxAttempts || !IsOriginBlocked(err) {
			return nil, err
		}

		wait := o.jitter(o.minDelay, o.maxDelay)
		o.logger.WithFields(logrus.Fields{
			"video_id": videoID,
			"attempt":  attempt,
			"wait_ms":  wait.Milliseconds(),
		}).Info("provider blocked request, retrying")
		o.observer.OriginBlockedRetry()

		if err := o.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (o *Orchestrator) fetchLanguageFallback(ctx context.Context, videoID string) (*Transcript, error) {
	return o.provider.Fetch(ctx, videoID, FallbackLanguages)
}

func (o *Orchestrator) fetchListSelect(ctx context.Context, videoID string) (*Transcript, error) {
	tracks, err := o.provider.List(ctx, videoID)
	if err != nil {
		return nil, err
	}
	track, ok := SelectTrack(tracks, FallbackLanguages)
	if !ok {
		return nil, fmt.Errorf("%w: want %v, have %v", ErrNoMatchingTrack, FallbackLanguages, LanguageCodes(tracks))
	}
	return o.provider.FetchTrack(ctx, videoID, track)
}

// fetchListFirst returns the first listed track that downloads, whatever its language.
func (o *Orchestrator) fetchListFirst(ctx context.Context, videoID string) (*Transcript, error) {
	tracks, err := o.provider.List(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}

	var lastErr error
	for _, track := range tracks {
		t, err := o.provider.FetchTrack(ctx, videoID, track)
		if err == nil && t != nil {
			return t, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == nil {
			err = errEmptyResult
		}
		lastErr = err
		o.logger.WithFields(logrus.Fields{
			"video_id": videoID,
			"language": track.LanguageCode,
			"error":    err.Error(),
		}).Debug("skipping track")
	}
	return nil, fmt.Errorf("all %d listed tracks failed: %w", len(tracks), lastErr)
}

func (o *Orchestrator) fetchPageScrape(ctx context.Context, videoID string) (*Transcript, error) {
	return o.scraper.Scrape(ctx, videoID, FallbackLanguages)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// uniformDelay picks a duration uniformly from [lo, hi].
func uniformDelay(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}
