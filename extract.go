package yttranscript

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"yttranscript/config"
	"yttranscript/format"
	ythttp "yttranscript/http"
	"yttranscript/output"
	"yttranscript/retry"
	"yttranscript/youtube"
)

// Stage identifies a step of the pipeline for status reporting.
type Stage string

// Pipeline stages, in execution order.
const (
	StageResolve  Stage = "resolving reference"
	StageDiscover Stage = "discovering languages"
	StageFetch    Stage = "fetching transcript"
	StageWrite    Stage = "writing output"
)

// Event is a discrete status notification. Events are observational only;
// they carry no control information back into the pipeline.
type Event struct {
	// InvocationID correlates all events of one Run call.
	InvocationID string
	// Stage is the step being entered.
	Stage Stage
	// Detail is optional human-readable context (e.g., the video ID).
	Detail string
}

// EventFunc receives status events. It is called synchronously from Run.
type EventFunc func(Event)

// TranscriptSource retrieves caption catalogs and transcripts. It is
// implemented by *youtube.Fetcher; tests substitute stubs.
type TranscriptSource interface {
	DiscoverLanguages(ctx context.Context, ref youtube.VideoRef) (youtube.LanguageCatalog, error)
	Fetch(ctx context.Context, ref youtube.VideoRef, languageCode string) (*youtube.Transcript, error)
}

// Request describes one pipeline invocation. The caller resolves every
// decision up front: the destination, the overwrite policy, and (for
// interactive use) the Confirm function that answers overwrite prompts.
type Request struct {
	// Reference is the raw video reference: a URL or a bare 11-char ID.
	Reference string
	// Language is the requested transcript language code; empty selects
	// the source's default track.
	Language string
	// Format configures line rendering.
	Format format.Options
	// Destination names where output goes; zero value means stdout.
	Destination output.Destination
	// ListLanguages discovers the catalog instead of fetching a transcript.
	ListLanguages bool
	// Confirm answers overwrite prompts for PolicyPrompt destinations.
	Confirm output.ConfirmFunc
	// OnEvent, when set, receives status events as stages begin.
	OnEvent EventFunc
	// Source overrides the transcript source; nil builds a youtube.Fetcher
	// from the supplied configuration.
	Source TranscriptSource
	// Stdout overrides the display stream, primarily for tests.
	Stdout io.Writer
}

// Result reports a successful invocation.
type Result struct {
	// Ref is the resolved video reference.
	Ref youtube.VideoRef
	// Language is the code of the fetched transcript (empty in list mode).
	Language string
	// LinesWritten is the number of output lines written (0 in list mode).
	LinesWritten int
	// Catalog is the discovered language catalog (list mode only).
	Catalog youtube.LanguageCatalog
}

// Run executes the pipeline synchronously: resolve, then either discover
// languages (list mode) or fetch, format, and write. Every returned error
// is one of the types in errors.go. Cancellation is honored through ctx,
// which bounds the fetcher's retry loop.
func Run(ctx context.Context, cfg *config.Config, req Request) (*Result, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	invocationID := uuid.NewString()
	emit := func(stage Stage, detail string) {
		if req.OnEvent != nil {
			req.OnEvent(Event{InvocationID: invocationID, Stage: stage, Detail: detail})
		}
	}

	emit(StageResolve, req.Reference)
	ref, err := youtube.ParseVideoRef(req.Reference)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == nil {
		fetcher, err := newFetcher(ctx, cfg)
		if err != nil {
			return nil, err
		}
		source = fetcher
	}

	if req.ListLanguages {
		emit(StageDiscover, ref.ID)
		catalog, err := source.DiscoverLanguages(ctx, ref)
		if err != nil {
			return nil, err
		}
		return &Result{Ref: ref, Catalog: catalog}, nil
	}

	emit(StageFetch, ref.ID)
	transcript, err := source.Fetch(ctx, ref, req.Language)
	if err != nil {
		return nil, err
	}

	emit(StageWrite, req.Destination.Path)
	opts := []output.SinkOption{output.WithConfirm(req.Confirm)}
	if req.Stdout != nil {
		opts = append(opts, output.WithStdout(req.Stdout))
	}
	sink := output.NewSink(req.Destination, opts...)

	lines, err := sink.Write(format.Lines(transcript, req.Format))
	if err != nil {
		return nil, err
	}

	return &Result{Ref: ref, Language: transcript.Language, LinesWritten: lines}, nil
}

// newFetcher builds the default transcript source from configuration,
// preferring the Data API catalog backend when an API key is present.
func newFetcher(ctx context.Context, cfg *config.Config) (*youtube.Fetcher, error) {
	httpClient := ythttp.New(&ythttp.Config{
		Timeout:           cfg.HTTPTimeout,
		UserAgent:         cfg.UserAgent,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Transport:         ythttp.DefaultTransportConfig(),
	})

	opts := []youtube.FetcherOption{
		youtube.WithRetryConfig(retry.Config{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   cfg.BaseBackoff,
			MaxDelay:    cfg.MaxBackoff,
		}),
	}

	if cfg.APIKey != "" {
		catalog, err := youtube.NewDataAPICatalog(ctx, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("data api backend: %w", err)
		}
		opts = append(opts, youtube.WithCatalogLister(catalog))
	}

	return youtube.NewFetcher(httpClient, opts...), nil
}
