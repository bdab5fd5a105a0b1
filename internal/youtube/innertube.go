package youtube

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
)

// YouTube InnerTube API: constants, request/response types and parsing of the
// player response. HTTP calls live in client.go.

const (
	defaultPlayerURL = "https://www.youtube.com/youtubei/v1/player"
	defaultWatchURL  = "https://www.youtube.com/watch?v="

	androidClientVersion = "20.10.38"
	androidUserAgent     = "com.google.android.youtube/" + androidClientVersion + " (Linux; U; Android 11) gzip"
	browserUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

func newPlayerRequest(videoID string) innertubeReq {
	return innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidClientVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	}
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

func (c captionTrack) displayName() string {
	if c.Name.SimpleText != "" {
		return c.Name.SimpleText
	}
	var sb strings.Builder
	for _, r := range c.Name.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// ParsePlayerResponse extracts the caption tracks from a raw player response,
// whether it came from the InnerTube API or from a watch page.
func ParsePlayerResponse(videoID string, data []byte) ([]transcript.Track, error) {
	var resp playerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode player response for %s: %w", videoID, err)
	}
	return resp.tracks(videoID)
}

func (r *playerResponse) tracks(videoID string) ([]transcript.Track, error) {
	if err := r.checkPlayability(videoID); err != nil {
		return nil, err
	}
	if r.Captions == nil || len(r.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		return nil, &TranscriptsDisabledError{VideoID: videoID}
	}

	raw := r.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	tracks := make([]transcript.Track, 0, len(raw))
	for _, ct := range raw {
		tracks = append(tracks, transcript.Track{
			LanguageCode: ct.LanguageCode,
			Language:     ct.displayName(),
			IsGenerated:  ct.Kind == "asr",
			BaseURL:      ct.BaseURL,
		})
	}
	return tracks, nil
}

func (r *playerResponse) checkPlayability(videoID string) error {
	if r.PlayabilityStatus == nil {
		return nil
	}
	status, reason := r.PlayabilityStatus.Status, r.PlayabilityStatus.Reason
	switch status {
	case "", "OK":
		return nil
	case "LOGIN_REQUIRED":
		if strings.Contains(strings.ToLower(reason), "not a bot") {
			return fmt.Errorf("%w: %s", transcript.ErrOriginBlocked, reason)
		}
	}
	return &VideoUnavailableError{VideoID: videoID, Status: status, Reason: reason}
}
