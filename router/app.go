package router

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/bigexperiment/youtube-transcript-Api/config"
	"github.com/bigexperiment/youtube-transcript-Api/handlers"
	"github.com/bigexperiment/youtube-transcript-Api/internal/browser"
	"github.com/bigexperiment/youtube-transcript-Api/internal/mcptool"
	"github.com/bigexperiment/youtube-transcript-Api/internal/metrics"
	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
	"github.com/bigexperiment/youtube-transcript-Api/internal/youtube"
)

// NewOrchestrator wires the YouTube client, the configured page scraper and
// the retry settings into an orchestrator.
func NewOrchestrator(cfg config.Config, logger logrus.FieldLogger, observer transcript.Observer) (*transcript.Orchestrator, error) {
	hc, err := youtube.NewHTTPClient(cfg.HTTPTimeout, cfg.ProxyURL)
	if err != nil {
		return nil, err
	}
	opts := []youtube.Option{youtube.WithHTTPClient(hc)}
	if cfg.UserAgent != "" {
		opts = append(opts, youtube.WithUserAgent(cfg.UserAgent))
	}
	client := youtube.NewClient(opts...)

	orchOpts := []transcript.Option{
		transcript.WithLogger(logger),
		transcript.WithMaxAttempts(cfg.MaxAttempts),
		transcript.WithRetryDelay(cfg.RetryMinDelay, cfg.RetryMaxDelay),
	}
	if observer != nil {
		orchOpts = append(orchOpts, transcript.WithObserver(observer))
	}
	switch cfg.ScrapeMode {
	case config.ScrapeHTTP:
		orchOpts = append(orchOpts, transcript.WithPageScraper(client))
	case config.ScrapeBrowser:
		orchOpts = append(orchOpts, transcript.WithPageScraper(browser.NewScraper(client, logger, cfg.ChromeBin)))
	case config.ScrapeOff:
	default:
		return nil, fmt.Errorf("unknown scrape mode %q", cfg.ScrapeMode)
	}
	return transcript.New(client, orchOpts...), nil
}

// NewApp builds the complete application from cfg.
func NewApp(cfg config.Config, logger logrus.FieldLogger, version string) (*fiber.App, error) {
	registry := metrics.New()
	orch, err := NewOrchestrator(cfg, logger, registry)
	if err != nil {
		return nil, err
	}
	h := handlers.NewApplicationHandler(orch, logger, registry, cfg.BatchWorkers, cfg.BatchMaxSize)

	return New(Deps{
		Handler: h,
		Logger:  logger,
		MCP:     mcptool.NewHandler(mcptool.NewServer(orch, version)),
	}), nil
}
