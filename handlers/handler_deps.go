package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/bigexperiment/youtube-transcript-Api/internal/metrics"
	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
)

// TranscriptFetcher defines the retrieval operation handlers expect.
// The concrete implementation is transcript.Orchestrator.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (*transcript.Transcript, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Fetcher      TranscriptFetcher
	Logger       logrus.FieldLogger
	Metrics      *metrics.Registry
	BatchWorkers int
	BatchMaxSize int

	validate *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(fetcher TranscriptFetcher, logger logrus.FieldLogger, registry *metrics.Registry, batchWorkers, batchMaxSize int) *ApplicationHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if registry == nil {
		registry = metrics.New()
	}
	return &ApplicationHandler{
		Fetcher:      fetcher,
		Logger:       logger,
		Metrics:      registry,
		BatchWorkers: batchWorkers,
		BatchMaxSize: batchMaxSize,
		validate:     validator.New(),
	}
}
