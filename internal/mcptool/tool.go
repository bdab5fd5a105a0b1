// Package mcptool exposes transcript retrieval as an MCP tool.
package mcptool

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
	"github.com/bigexperiment/youtube-transcript-Api/internal/videoid"
	"github.com/bigexperiment/youtube-transcript-Api/models"
)

// Fetcher is the retrieval entry point the tool calls.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (*transcript.Transcript, error)
}

type GetTranscriptInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video ID or URL (watch, youtu.be, embed or /v/ form)"`
	Format  string `json:"format,omitempty" jsonschema:"segments (default) for timed entries, text for one space-joined string"`
}

type GetTranscriptOutput struct {
	VideoID      string                     `json:"video_id"`
	LanguageCode string                     `json:"language_code,omitempty"`
	TotalEntries int                        `json:"total_entries"`
	Transcript   []models.TranscriptSegment `json:"transcript,omitempty"`
	Text         string                     `json:"text,omitempty"`
}

// NewServer returns an MCP server with every tool registered.
func NewServer(fetcher Fetcher, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "youtube-transcript-api",
		Version: version,
	}, nil)
	Register(server, fetcher)
	return server
}

// Register adds the get_transcript tool to server.
func Register(server *mcp.Server, fetcher Fetcher) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Fetch the transcript of a YouTube video. Accepts a bare video ID or any common YouTube URL and returns timed segments, or plain text when format is text.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, getTranscript(fetcher))
}

func getTranscript(fetcher Fetcher) mcp.ToolHandlerFor[GetTranscriptInput, *GetTranscriptOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetTranscriptInput) (*mcp.CallToolResult, *GetTranscriptOutput, error) {
		if input.VideoID == "" {
			return nil, nil, errors.New("video_id is required")
		}
		if input.Format != "" && input.Format != "segments" && input.Format != "text" {
			return nil, nil, errors.New("format must be segments or text")
		}
		id, ok := videoid.Resolve(input.VideoID)
		if !ok {
			return nil, nil, errors.New("invalid YouTube URL or video ID")
		}
		t, err := fetcher.Fetch(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		out := &GetTranscriptOutput{
			VideoID:      id,
			LanguageCode: t.LanguageCode,
			TotalEntries: t.TotalEntries(),
		}
		if input.Format == "text" {
			out.Text = t.Text()
		} else {
			out.Transcript = t.Segments
		}
		return nil, out, nil
	}
}

// NewHandler serves server over stateless streamable HTTP with JSON
// responses, which works behind request/response-only hosts.
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{Stateless: true, JSONResponse: true})
}
