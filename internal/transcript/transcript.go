// Package transcript fetches YouTube transcripts through an ordered chain of
// retrieval strategies over a Provider.
package transcript

import (
	"context"
	"strings"

	"github.com/bigexperiment/youtube-transcript-Api/models"
)

// Transcript is the ordered set of caption segments for one video and language.
type Transcript struct {
	VideoID      string
	Language     string
	LanguageCode string
	IsGenerated  bool
	Segments     []models.TranscriptSegment
}

// Text joins all segment texts with single spaces, in order.
func (t *Transcript) Text() string {
	texts := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		texts[i] = s.Text
	}
	return strings.Join(texts, " ")
}

// TotalEntries returns the number of segments.
func (t *Transcript) TotalEntries() int {
	return len(t.Segments)
}

// Track describes one transcript a provider has available for a video.
type Track struct {
	LanguageCode string
	Language     string
	IsGenerated  bool
	BaseURL      string
}

// Provider is the external transcript source the orchestrator drives.
type Provider interface {
	// Fetch returns the first available transcript in languages order.
	Fetch(ctx context.Context, videoID string, languages []string) (*Transcript, error)
	// List enumerates every transcript available for the video.
	List(ctx context.Context, videoID string) ([]Track, error)
	// FetchTrack downloads one enumerated transcript.
	FetchTrack(ctx context.Context, videoID string, track Track) (*Transcript, error)
}

// PageScraper recovers a transcript from the video's watch page.
type PageScraper interface {
	Scrape(ctx context.Context, videoID string, languages []string) (*Transcript, error)
}

// SelectTrack picks the track for the first language in languages that has
// one, preferring manually created tracks over generated ones.
func SelectTrack(tracks []Track, languages []string) (Track, bool) {
	for _, lang := range languages {
		var generated *Track
		for i := range tracks {
			if tracks[i].LanguageCode != lang {
				continue
			}
			if !tracks[i].IsGenerated {
				return tracks[i], true
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, true
		}
	}
	return Track{}, false
}

// LanguageCodes lists the language codes of tracks in order.
func LanguageCodes(tracks []Track) []string {
	codes := make([]string, len(tracks))
	for i, t := range tracks {
		codes[i] = t.LanguageCode
	}
	return codes
}
