package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bigexperiment/youtube-transcript-Api/internal/metrics"
	"github.com/bigexperiment/youtube-transcript-Api/internal/videoid"
	"github.com/bigexperiment/youtube-transcript-Api/internal/worker"
	"github.com/bigexperiment/youtube-transcript-Api/models"
	"github.com/bigexperiment/youtube-transcript-Api/utils"
)

// transcriptJob fetches one batch entry and writes only its own result slot.
type transcriptJob struct {
	index     int
	reference string
	plainText bool
	handler   *ApplicationHandler
	out       *models.BatchItem
}

func (j *transcriptJob) ID() string { return strconv.Itoa(j.index) + ":" + j.reference }

func (j *transcriptJob) Execute(ctx context.Context) error {
	id, ok := videoid.Resolve(j.reference)
	if !ok {
		j.out.VideoID = j.reference
		j.out.Error = msgInvalidRef
		return fmt.Errorf("resolve %q: %s", j.reference, msgInvalidRef)
	}
	j.out.VideoID = id

	t, err := j.handler.fetch(ctx, id)
	if err != nil {
		j.out.Error = msgFetchFailed + err.Error()
		return err
	}
	if j.plainText {
		j.out.Text = t.Text()
	} else {
		resp := models.NewTranscriptResponse(j.out.VideoID, t.Segments)
		j.out.Transcript = resp.Transcript
		j.out.TotalEntries = resp.TotalEntries
	}
	return nil
}

// BatchTranscripts fetches several transcripts concurrently.
// @Summary Get transcripts for several videos
// @Description Resolves and fetches each reference with a bounded worker pool. Results keep request order; a failed entry carries an error instead of failing the batch.
// @Tags transcripts
// @Accept  json
// @Produce  json
// @Param   request body models.BatchRequest true "References and output format"
// @Success 200 {object} models.BatchResponse
// @Failure 400 {object} models.ErrorResponse "Malformed or oversized request"
// @Router /transcript/batch [post]
func (h *ApplicationHandler) BatchTranscripts(c *fiber.Ctx) error {
	var req models.BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse JSON: %v", err))
	}
	req.Format = utils.SanitizeInput(req.Format)
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}
	if h.BatchMaxSize > 0 && len(req.VideoIDs) > h.BatchMaxSize {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Too many video_ids: got %d, the limit is %d", len(req.VideoIDs), h.BatchMaxSize))
	}
	h.Metrics.Incr(metrics.BatchRequests)

	results := make([]models.BatchItem, len(req.VideoIDs))
	d := worker.NewDispatcher(min(max(h.BatchWorkers, 1), len(req.VideoIDs)), len(req.VideoIDs), h.Logger)
	d.Run(c.UserContext())
	for i, ref := range req.VideoIDs {
		job := &transcriptJob{
			index:     i,
			reference: ref,
			plainText: req.Format == "text",
			handler:   h,
			out:       &results[i],
		}
		if err := d.SubmitJob(job); err != nil {
			results[i] = models.BatchItem{VideoID: ref, Error: err.Error()}
		}
	}
	d.Wait()
	d.Stop()

	return utils.RespondWithJSON(c, fiber.StatusOK, models.BatchResponse{Results: results})
}
