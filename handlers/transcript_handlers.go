package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/bigexperiment/youtube-transcript-Api/internal/metrics"
	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
	"github.com/bigexperiment/youtube-transcript-Api/internal/videoid"
	"github.com/bigexperiment/youtube-transcript-Api/models"
	"github.com/bigexperiment/youtube-transcript-Api/utils"
)

const (
	transcriptUsage     = "GET /transcript?video_id=YOUR_VIDEO_ID_OR_URL"
	transcriptTextUsage = "GET /transcript/text?video_id=YOUR_VIDEO_ID_OR_URL"

	msgMissingVideoID = "Missing video_id parameter"
	msgInvalidRef     = "Invalid YouTube URL or video ID"
	msgFetchFailed    = "Failed to get transcript: "
)

// TranscriptQuery is the query string accepted by the transcript endpoints.
type TranscriptQuery struct {
	VideoID string `query:"video_id" validate:"required"`
}

// GetTranscript returns the timed segments of a video's transcript.
// @Summary Get a transcript with timing
// @Description Resolves a YouTube video ID or URL and returns every caption segment with its start time and duration.
// @Tags transcripts
// @Produce  json
// @Param   video_id query string true "YouTube video ID or URL"
// @Success 200 {object} models.TranscriptResponse
// @Failure 400 {object} models.ErrorResponse "Missing or unresolvable video_id"
// @Failure 500 {object} models.ErrorResponse "No strategy could retrieve a transcript"
// @Router /transcript [get]
func (h *ApplicationHandler) GetTranscript(c *fiber.Ctx) error {
	id, t, done, err := h.fetchForQuery(c, transcriptUsage)
	if done {
		return err
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, models.NewTranscriptResponse(id, t.Segments))
}

// GetTranscriptText returns a video's transcript as one string.
// @Summary Get a transcript as plain text
// @Description Resolves a YouTube video ID or URL and returns the caption texts joined by single spaces.
// @Tags transcripts
// @Produce  json
// @Param   video_id query string true "YouTube video ID or URL"
// @Success 200 {object} models.TranscriptTextResponse
// @Failure 400 {object} models.ErrorResponse "Missing or unresolvable video_id"
// @Failure 500 {object} models.ErrorResponse "No strategy could retrieve a transcript"
// @Router /transcript/text [get]
func (h *ApplicationHandler) GetTranscriptText(c *fiber.Ctx) error {
	id, t, done, err := h.fetchForQuery(c, transcriptTextUsage)
	if done {
		return err
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, models.TranscriptTextResponse{
		VideoID: id,
		Text:    t.Text(),
	})
}

// fetchForQuery validates the query, resolves the reference and runs the
// fetch. When done is true the response has already been written.
func (h *ApplicationHandler) fetchForQuery(c *fiber.Ctx, usage string) (string, *transcript.Transcript, bool, error) {
	var q TranscriptQuery
	if err := c.QueryParser(&q); err != nil {
		return "", nil, true, utils.RespondWithUsage(c, msgMissingVideoID, usage)
	}
	if err := h.validate.Struct(q); err != nil {
		return "", nil, true, utils.RespondWithUsage(c, msgMissingVideoID, usage)
	}

	id, ok := videoid.Resolve(q.VideoID)
	if !ok {
		return "", nil, true, utils.RespondWithError(c, fiber.StatusBadRequest, msgInvalidRef)
	}

	t, err := h.fetch(c.UserContext(), id)
	if err != nil {
		return id, nil, true, respondFetchError(c, err)
	}
	return id, t, false, nil
}

func (h *ApplicationHandler) fetch(ctx context.Context, id string) (*transcript.Transcript, error) {
	h.Metrics.Incr(metrics.TranscriptRequests)
	t, err := h.Fetcher.Fetch(ctx, id)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"video_id": id}).WithError(err).Warn("Transcript fetch failed")
		return nil, err
	}
	return t, nil
}

func respondFetchError(c *fiber.Ctx, err error) error {
	var suggestions []string
	var unavailable *transcript.UnavailableError
	if errors.As(err, &unavailable) {
		suggestions = unavailable.Suggestions()
	}
	return utils.RespondWithUnavailable(c, msgFetchFailed+err.Error(), transcript.UnavailableNote, suggestions)
}
