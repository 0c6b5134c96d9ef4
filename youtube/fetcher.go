package youtube

import (
	"context"
	"errors"
	"log"

	ythttp "yttranscript/http"
	"yttranscript/retry"
)

// CatalogLister fetches the caption-language catalog for a video. The
// InnerTube player response is the default backend; the Data API backend
// (see DataAPICatalog) can be layered in front of it.
type CatalogLister interface {
	ListCaptionTracks(ctx context.Context, videoID string) (LanguageCatalog, error)
}

// Fetcher retrieves caption catalogs and transcripts for resolved videos.
// Transient failures are retried with exponential backoff and jitter;
// permanent conditions (video unavailable, transcripts disabled, language
// absent) propagate immediately. A Fetcher keeps no state between calls
// beyond its HTTP connection pool.
type Fetcher struct {
	httpClient *ythttp.Client
	retryCfg   retry.Config
	catalog    CatalogLister
	playerURL  string
}

// FetcherOption configures the fetcher.
type FetcherOption func(*Fetcher)

// WithRetryConfig sets custom retry configuration.
func WithRetryConfig(cfg retry.Config) FetcherOption {
	return func(f *Fetcher) {
		f.retryCfg = cfg
	}
}

// WithCatalogLister sets a preferred catalog backend, consulted before the
// player response during language discovery.
func WithCatalogLister(lister CatalogLister) FetcherOption {
	return func(f *Fetcher) {
		f.catalog = lister
	}
}

// NewFetcher creates a fetcher using the given HTTP client.
func NewFetcher(httpClient *ythttp.Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		httpClient: httpClient,
		retryCfg:   retry.DefaultConfig(),
		playerURL:  playerEndpoint,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// DiscoverLanguages returns the caption-language catalog for the video.
// When a preferred catalog backend is configured it is tried first; on its
// failure the player response is the fallback, so discovery degrades rather
// than breaking when the Data API key has no quota left.
func (f *Fetcher) DiscoverLanguages(ctx context.Context, ref VideoRef) (LanguageCatalog, error) {
	if f.catalog != nil {
		catalog, err := f.catalog.ListCaptionTracks(ctx, ref.ID)
		if err == nil {
			return catalog, nil
		}
		if errors.Is(err, ErrVideoUnavailable) || errors.Is(err, ErrTranscriptUnavailable) {
			return nil, err
		}
		log.Printf("youtube: catalog backend failed, falling back to player response: %v", err)
	}

	var catalog LanguageCatalog
	err := retry.Do(ctx, f.retryCfg, transientError, func(ctx context.Context) error {
		resp, err := f.fetchPlayerResponse(ctx, ref)
		if err != nil {
			return err
		}
		tracks, audio, err := resp.captionTracks()
		if err != nil {
			return err
		}
		catalog = buildCatalog(tracks, audio)
		return nil
	})
	if err != nil {
		return nil, wrapExhaustion(err)
	}

	return catalog, nil
}

// Fetch retrieves the transcript for the video in the given language code.
// An empty languageCode selects the source's default track (manually
// authored preferred), then the first catalog entry. A requested code absent
// from the catalog fails with *LanguageNotFoundError and is never
// substituted. Each attempt performs a fresh player query and track
// download; transient failures are retried up to the configured attempts.
func (f *Fetcher) Fetch(ctx context.Context, ref VideoRef, languageCode string) (*Transcript, error) {
	var transcript *Transcript
	err := retry.Do(ctx, f.retryCfg, transientError, func(ctx context.Context) error {
		resp, err := f.fetchPlayerResponse(ctx, ref)
		if err != nil {
			return err
		}
		tracks, audio, err := resp.captionTracks()
		if err != nil {
			return err
		}

		catalog := buildCatalog(tracks, audio)
		selected, err := SelectLanguage(catalog, languageCode)
		if err != nil {
			return err
		}

		var track captionTrack
		for i, opt := range catalog {
			if opt == selected {
				track = tracks[i]
				break
			}
		}

		segments, err := f.fetchTrack(ctx, track)
		if err != nil {
			return err
		}

		transcript = &Transcript{
			Ref:          ref,
			Language:     selected.Code,
			Generated:    selected.Generated,
			Translatable: selected.Translatable,
			Segments:     segments,
		}
		return nil
	})
	if err != nil {
		return nil, wrapExhaustion(err)
	}

	return transcript, nil
}

// transientError classifies fetch errors. Rate limiting and server errors
// are worth retrying; unavailable videos, disabled transcripts, absent
// languages, and context expiry are not.
func transientError(err error) bool {
	if errors.Is(err, ErrVideoUnavailable) || errors.Is(err, ErrTranscriptUnavailable) {
		return false
	}
	var langErr *LanguageNotFoundError
	if errors.As(err, &langErr) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var rlErr *ythttp.RateLimitError
	if errors.As(err, &rlErr) {
		return true
	}
	var httpErr *ythttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}

	// Connection resets, timeouts, and other transport failures.
	return true
}

// wrapExhaustion converts retry exhaustion into a NetworkError carrying the
// attempt count; other errors pass through unchanged.
func wrapExhaustion(err error) error {
	var ex *retry.ExhaustedError
	if errors.As(err, &ex) {
		return &NetworkError{Attempts: ex.Attempts, Err: ex.Err}
	}
	return err
}
