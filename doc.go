// Package yttranscript retrieves YouTube video transcripts and renders them
// as plain text or markdown.
//
// It resolves a video reference (URL or bare ID), discovers the caption
// languages the video offers, fetches the selected transcript with retry on
// transient failures, and streams the formatted lines to standard output or
// a file with overwrite protection.
//
// # Quick Start
//
// Fetch and print a transcript:
//
//	cfg := config.DefaultConfig()
//	result, err := yttranscript.Run(ctx, cfg, yttranscript.Request{
//		Reference: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// List the available transcript languages:
//
//	result, err := yttranscript.Run(ctx, cfg, yttranscript.Request{
//		Reference:     "dQw4w9WgXcQ",
//		ListLanguages: true,
//	})
//	for _, opt := range result.Catalog {
//		fmt.Printf("%s (%s)\n", opt.Code, opt.Name)
//	}
//
// Save a markdown transcript with timestamps:
//
//	result, err := yttranscript.Run(ctx, cfg, yttranscript.Request{
//		Reference:   "dQw4w9WgXcQ",
//		Format:      format.Options{Kind: format.Markdown, Timestamps: true},
//		Destination: output.Destination{Path: "transcript.md"},
//	})
//
// # Errors
//
// Every failure is one of a closed set of types; see errors.go for the
// re-exported taxonomy and the errors.Is/errors.As patterns each supports.
package yttranscript
