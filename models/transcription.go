package models

// TranscriptSegment represents a single timed line of a transcript.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// TranscriptResponse is the body returned by GET /transcript.
type TranscriptResponse struct {
	VideoID      string              `json:"video_id"`
	Transcript   []TranscriptSegment `json:"transcript"`
	TotalEntries int                 `json:"total_entries"`
}

// NewTranscriptResponse builds the GET /transcript body. No segments encode
// as an empty array, never null.
func NewTranscriptResponse(videoID string, segments []TranscriptSegment) TranscriptResponse {
	if segments == nil {
		segments = []TranscriptSegment{}
	}
	return TranscriptResponse{VideoID: videoID, Transcript: segments, TotalEntries: len(segments)}
}

// TranscriptTextResponse is the body returned by GET /transcript/text.
type TranscriptTextResponse struct {
	VideoID string `json:"video_id"`
	Text    string `json:"text"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Usage       string   `json:"usage,omitempty"`
	Note        string   `json:"note,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// BatchRequest defines the payload for POST /transcript/batch.
type BatchRequest struct {
	VideoIDs []string `json:"video_ids" validate:"required,min=1,dive,required"`
	Format   string   `json:"format,omitempty" validate:"omitempty,oneof=segments text"`
}

// BatchItem is the outcome for one reference of a batch request.
// Exactly one of Transcript/Text or Error is set.
type BatchItem struct {
	VideoID      string              `json:"video_id"`
	Transcript   []TranscriptSegment `json:"transcript,omitempty"`
	TotalEntries int                 `json:"total_entries,omitempty"`
	Text         string              `json:"text,omitempty"`
	Error        string              `json:"error,omitempty"`
}

// BatchResponse is the body returned by POST /transcript/batch.
type BatchResponse struct {
	Results []BatchItem `json:"results"`
}
