package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	// playerEndpoint is the InnerTube API endpoint for video player data,
	// including the caption track list.
	playerEndpoint = "https://www.youtube.com/youtubei/v1/player"

	// defaultClientName is the client identifier for web requests.
	defaultClientName = "WEB"
	// defaultClientVersion is the client version for web requests.
	defaultClientVersion = "2.20240101.00.00"

	// defaultUserAgent mimics a standard browser.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// playerRequest represents a request to the player endpoint.
type playerRequest struct {
	Context clientContext `json:"context"`
	VideoID string        `json:"videoId"`
}

// clientContext contains client identification for the API request.
type clientContext struct {
	Client innertubeClient `json:"client"`
}

// innertubeClient identifies the client making the request.
type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
}

// playerResponse represents the response from the player endpoint,
// reduced to the fields transcript retrieval needs.
type playerResponse struct {
	PlayabilityStatus *playabilityStatus `json:"playabilityStatus,omitempty"`
	Captions          *captionsWrapper   `json:"captions,omitempty"`
}

// playabilityStatus reports whether the video can be played.
type playabilityStatus struct {
	Status string `json:"status,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// captionsWrapper holds the caption track list renderer.
type captionsWrapper struct {
	PlayerCaptionsTracklistRenderer *tracklistRenderer `json:"playerCaptionsTracklistRenderer,omitempty"`
}

// tracklistRenderer lists the caption and audio tracks for a video.
type tracklistRenderer struct {
	CaptionTracks []captionTrack `json:"captionTracks,omitempty"`
	AudioTracks   []audioTrack   `json:"audioTracks,omitempty"`
}

// captionTrack describes one caption track.
type captionTrack struct {
	BaseURL        string    `json:"baseUrl,omitempty"`
	Name           *textRuns `json:"name,omitempty"`
	LanguageCode   string    `json:"languageCode,omitempty"`
	Kind           string    `json:"kind,omitempty"` // "asr" for machine-generated tracks
	IsTranslatable bool      `json:"isTranslatable,omitempty"`
}

// audioTrack carries the index of the designated default caption track.
type audioTrack struct {
	DefaultCaptionTrackIndex *int `json:"defaultCaptionTrackIndex,omitempty"`
}

// textRuns contains text with optional runs for formatting.
type textRuns struct {
	Runs       []textRun `json:"runs,omitempty"`
	SimpleText string    `json:"simpleText,omitempty"`
}

// textRun is a segment of text.
type textRun struct {
	Text string `json:"text,omitempty"`
}

// getText extracts plain text from textRuns.
func (t *textRuns) getText() string {
	if t == nil {
		return ""
	}
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var parts []string
	for _, run := range t.Runs {
		parts = append(parts, run.Text)
	}
	return strings.Join(parts, "")
}

// fetchPlayerResponse performs one player endpoint query for the video.
func (f *Fetcher) fetchPlayerResponse(ctx context.Context, ref VideoRef) (*playerResponse, error) {
	req := &playerRequest{
		Context: clientContext{
			Client: innertubeClient{
				ClientName:    defaultClientName,
				ClientVersion: defaultClientVersion,
				HL:            "en",
				GL:            "US",
			},
		},
		VideoID: ref.ID,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal player request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"User-Agent":   defaultUserAgent,
		"Origin":       "https://www.youtube.com",
		"Referer":      "https://www.youtube.com/",
	}

	httpResp, err := f.httpClient.Do(ctx, http.MethodPost, f.playerURL, bytes.NewReader(body), headers)
	if err != nil {
		return nil, fmt.Errorf("player request: %w", err)
	}

	var resp playerResponse
	if err := json.Unmarshal(httpResp.Body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal player response: %w", err)
	}

	return &resp, nil
}

// captionTracks validates playability and returns the video's caption tracks.
// A non-OK playability status maps to ErrVideoUnavailable; a playable video
// without caption tracks maps to ErrTranscriptUnavailable.
func (pr *playerResponse) captionTracks() ([]captionTrack, []audioTrack, error) {
	if pr.PlayabilityStatus != nil && pr.PlayabilityStatus.Status != "" && pr.PlayabilityStatus.Status != "OK" {
		if pr.PlayabilityStatus.Reason != "" {
			return nil, nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, pr.PlayabilityStatus.Reason)
		}
		return nil, nil, ErrVideoUnavailable
	}

	if pr.Captions == nil || pr.Captions.PlayerCaptionsTracklistRenderer == nil {
		return nil, nil, ErrTranscriptUnavailable
	}

	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, nil, ErrTranscriptUnavailable
	}

	return tracks, pr.Captions.PlayerCaptionsTracklistRenderer.AudioTracks, nil
}

// buildCatalog converts caption tracks into a LanguageCatalog, marking the
// source's designated default track when the player response names one.
func buildCatalog(tracks []captionTrack, audio []audioTrack) LanguageCatalog {
	defaultIndex := -1
	for _, at := range audio {
		if at.DefaultCaptionTrackIndex != nil {
			defaultIndex = *at.DefaultCaptionTrackIndex
			break
		}
	}

	catalog := make(LanguageCatalog, 0, len(tracks))
	for i, track := range tracks {
		catalog = append(catalog, LanguageOption{
			Code:         track.LanguageCode,
			Name:         track.Name.getText(),
			Generated:    track.Kind == "asr",
			Translatable: track.IsTranslatable,
			Default:      i == defaultIndex,
		})
	}
	return catalog
}
