package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	ythttp "yttranscript/http"
)

// timedtextResponse represents the raw timedtext (json3) API response.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

// timedtextEvent represents a single timed event in the timedtext response.
type timedtextEvent struct {
	TStartMs    *int64          `json:"tStartMs,omitempty"`
	DDurationMs *int64          `json:"dDurationMs,omitempty"`
	Segs        []timedtextSeg  `json:"segs,omitempty"`
	AAppend     int             `json:"aAppend,omitempty"`
	WpWinID     int             `json:"wpWinId,omitempty"`
}

// timedtextSeg represents text within a timedtext event.
type timedtextSeg struct {
	UTF8 string `json:"utf8"`
}

// fetchTrack downloads a caption track in json3 form and parses it into
// caption segments.
func (f *Fetcher) fetchTrack(ctx context.Context, track captionTrack) ([]CaptionSegment, error) {
	trackURL := track.BaseURL
	if strings.Contains(trackURL, "?") {
		trackURL += "&fmt=json3"
	} else {
		trackURL += "?fmt=json3"
	}

	headers := map[string]string{
		"User-Agent": defaultUserAgent,
	}

	resp, err := f.httpClient.Do(ctx, "GET", trackURL, nil, headers)
	if err != nil {
		// A track URL that stops resolving means the captions were pulled
		// between the player query and the download.
		var httpErr *ythttp.HTTPError
		if errors.As(err, &httpErr) && (httpErr.StatusCode == 404 || httpErr.StatusCode == 403) {
			return nil, fmt.Errorf("%w: timedtext status %d", ErrTranscriptUnavailable, httpErr.StatusCode)
		}
		return nil, fmt.Errorf("timedtext request: %w", err)
	}

	segments, err := parseTimedtext(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse timedtext response: %w", err)
	}

	return segments, nil
}

// parseTimedtext parses a timedtext json3 payload into caption segments.
// Window and append events carry no standalone text and are skipped.
// Timing fields that the source omits stay nil on the segment.
func parseTimedtext(data []byte) ([]CaptionSegment, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal timedtext JSON: %w", err)
	}

	var segments []CaptionSegment
	for _, event := range resp.Events {
		if len(event.Segs) == 0 || event.AAppend != 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}

		trimmed := strings.TrimSpace(text.String())
		if trimmed == "" {
			continue
		}

		segment := CaptionSegment{Text: trimmed}
		if event.TStartMs != nil {
			start := float64(*event.TStartMs) / 1000.0
			segment.Start = &start
		}
		if event.DDurationMs != nil {
			duration := float64(*event.DDurationMs) / 1000.0
			segment.Duration = &duration
		}
		segments = append(segments, segment)
	}

	return segments, nil
}
