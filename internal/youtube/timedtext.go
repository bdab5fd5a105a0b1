package youtube

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/bigexperiment/youtube-transcript-Api/models"
)

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// ParseTimedText converts a timedtext XML document into ordered segments.
// Lines without text are dropped.
func ParseTimedText(data []byte) ([]models.TranscriptSegment, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]models.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		start, err := parseSeconds(line.Start)
		if err != nil {
			return nil, fmt.Errorf("start %q: %w", line.Start, err)
		}
		dur, err := parseSeconds(line.Dur)
		if err != nil {
			return nil, fmt.Errorf("dur %q: %w", line.Dur, err)
		}
		segments = append(segments, models.TranscriptSegment{
			Text:     cleanCaption(line.Text),
			Start:    start,
			Duration: dur,
		})
	}
	return segments, nil
}

func parseSeconds(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// cleanCaption decodes HTML entities and drops formatting markup such as
// <font> that YouTube leaves escaped inside caption text.
func cleanCaption(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return strings.TrimSpace(sb.String())
			}
			return strings.TrimSpace(s)
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
