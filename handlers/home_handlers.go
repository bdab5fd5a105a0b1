package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type endpointDoc struct {
	Method      string `json:"method"`
	Params      string `json:"params,omitempty"`
	Body        string `json:"body,omitempty"`
	Description string `json:"description"`
}

// HomeResponse is the static API description served at GET /.
type HomeResponse struct {
	Message   string                 `json:"message"`
	Endpoints map[string]endpointDoc `json:"endpoints"`
	Examples  map[string]string      `json:"examples"`
}

var home = HomeResponse{
	Message: "YouTube Transcript API",
	Endpoints: map[string]endpointDoc{
		"/transcript": {
			Method:      "GET",
			Params:      "video_id (YouTube video ID or URL)",
			Description: "Get transcript with timing information",
		},
		"/transcript/text": {
			Method:      "GET",
			Params:      "video_id (YouTube video ID or URL)",
			Description: "Get transcript as plain text",
		},
		"/transcript/batch": {
			Method:      "POST",
			Body:        `{"video_ids": [...], "format": "segments" | "text"}`,
			Description: "Get transcripts for several videos in one call",
		},
		"/health":    {Method: "GET", Description: "Liveness check"},
		"/metrics":   {Method: "GET", Description: "Request counters as plain text"},
		"/swagger/*": {Method: "GET", Description: "OpenAPI documentation"},
		"/mcp":       {Method: "POST", Description: "Model Context Protocol endpoint exposing the get_transcript tool"},
	},
	Examples: map[string]string{
		"by_video_id": "/transcript?video_id=dQw4w9WgXcQ",
		"by_url":      "/transcript?video_id=https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	},
}

// Home serves the API description.
// @Summary API documentation
// @Tags meta
// @Produce  json
// @Success 200 {object} HomeResponse
// @Router / [get]
func (h *ApplicationHandler) Home(c *fiber.Ctx) error {
	return c.JSON(home)
}

// Health check route.
// @Summary Health check
// @Tags meta
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// GetMetrics writes the process counters.
// @Summary Request counters
// @Tags meta
// @Produce  plain
// @Success 200 {string} string
// @Router /metrics [get]
func (h *ApplicationHandler) GetMetrics(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(h.Metrics.Format())
}
