package youtube

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// DataAPICatalog lists caption tracks via the YouTube Data API v3
// captions.list endpoint, which works with a bare API key. It cannot
// download transcript content (that requires track ownership), so it only
// serves language discovery; the fetcher falls back to the player response
// when this backend errors, so an exhausted quota degrades rather than fails.
type DataAPICatalog struct {
	service *youtubeapi.Service
}

// NewDataAPICatalog creates a Data API catalog backend for the given key.
func NewDataAPICatalog(ctx context.Context, apiKey string) (*DataAPICatalog, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &DataAPICatalog{service: service}, nil
}

// ListCaptionTracks returns the caption-language catalog for the video.
func (d *DataAPICatalog) ListCaptionTracks(ctx context.Context, videoID string) (LanguageCatalog, error) {
	resp, err := d.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, videoID)
		}
		return nil, fmt.Errorf("captions.list %s: %w", videoID, err)
	}

	if len(resp.Items) == 0 {
		return nil, ErrTranscriptUnavailable
	}

	catalog := make(LanguageCatalog, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		catalog = append(catalog, LanguageOption{
			Code:      item.Snippet.Language,
			Name:      item.Snippet.Name,
			Generated: item.Snippet.TrackKind == "asr" || item.Snippet.TrackKind == "ASR",
		})
	}

	if len(catalog) == 0 {
		return nil, ErrTranscriptUnavailable
	}
	return catalog, nil
}
