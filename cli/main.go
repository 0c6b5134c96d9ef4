// Command yttranscript extracts YouTube video transcripts.
//
// This is thin glue over the yttranscript library: it parses flags, maps
// the error taxonomy to exit codes, and answers overwrite prompts. All
// policy lives in the library.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"yttranscript"
	"yttranscript/config"
	"yttranscript/format"
	"yttranscript/output"
)

// Exit codes, one per error class.
const (
	exitOK          = 0
	exitUsage       = 1
	exitUnavailable = 2
	exitLanguage    = 3
	exitConflict    = 4
	exitFileOutput  = 5
	exitInterrupt   = 130
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("yttranscript", flag.ExitOnError)
	formatName := fs.String("format", "plain", "Output format: plain or markdown")
	outputPath := fs.String("output", "", "Output file path (default: stdout)")
	language := fs.String("language", "", "Transcript language code (e.g., en, es, fr)")
	timestamps := fs.Bool("timestamps", false, "Include timestamps in output")
	listLanguages := fs.Bool("list-languages", false, "List available transcript languages")
	force := fs.Bool("force", false, "Overwrite existing output files without confirmation")
	quiet := fs.Bool("quiet", false, "Suppress progress messages")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `yttranscript - YouTube transcript extractor

Usage:
  yttranscript [flags] <url-or-video-id>

The reference can be a full YouTube URL (youtube.com/watch?v=..., youtu.be/...)
or just the 11-character video ID.

Examples:
  yttranscript https://youtube.com/watch?v=dQw4w9WgXcQ
  yttranscript dQw4w9WgXcQ -format markdown -timestamps
  yttranscript https://youtu.be/dQw4w9WgXcQ -output transcript.txt
  yttranscript dQw4w9WgXcQ -list-languages

Flags:
`)
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: missing url-or-video-id")
		fs.Usage()
		return exitUsage
	}
	reference := fs.Arg(0)

	kind, err := format.ParseKind(*formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	if *listLanguages && (*outputPath != "" || *timestamps || kind != format.Plain) {
		fmt.Fprintln(os.Stderr, "Error: -list-languages cannot be combined with output options")
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	policy := output.PolicyPrompt
	if *force {
		policy = output.PolicyForce
	}

	req := yttranscript.Request{
		Reference:     reference,
		Language:      *language,
		Format:        format.Options{Kind: kind, Timestamps: *timestamps},
		Destination:   output.Destination{Path: *outputPath, Overwrite: policy},
		ListLanguages: *listLanguages,
		Confirm:       confirmOverwrite,
	}
	if !*quiet {
		req.OnEvent = func(e yttranscript.Event) {
			fmt.Fprintf(os.Stderr, "%s...\n", e.Stage)
		}
	}

	result, err := yttranscript.Run(ctx, cfg, req)
	if err != nil {
		return reportError(ctx, err)
	}

	if *listLanguages {
		printCatalog(result)
		return exitOK
	}
	if *outputPath != "" {
		fmt.Fprintf(os.Stderr, "Transcript saved to %q (%d lines)\n", *outputPath, result.LinesWritten)
	}
	return exitOK
}

// reportError maps the error taxonomy to messages and exit codes.
func reportError(ctx context.Context, err error) int {
	if errors.Is(err, output.ErrOverwriteDeclined) {
		fmt.Fprintln(os.Stderr, "Operation cancelled.")
		return exitOK
	}
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "\nOperation cancelled by user.")
		return exitInterrupt
	}

	var refErr *yttranscript.InvalidReferenceError
	if errors.As(err, &refErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Expected format: https://youtube.com/watch?v=VIDEO_ID, https://youtu.be/VIDEO_ID, or VIDEO_ID")
		return exitUsage
	}

	var langErr *yttranscript.LanguageNotFoundError
	if errors.As(err, &langErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Use -list-languages to see the full list.")
		return exitLanguage
	}

	var conflictErr *yttranscript.FileConflictError
	if errors.As(err, &conflictErr) {
		fmt.Fprintf(os.Stderr, "Error: %v (use -force to overwrite)\n", err)
		return exitConflict
	}

	var outErr *yttranscript.FileOutputError
	if errors.As(err, &outErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFileOutput
	}

	var netErr *yttranscript.NetworkError
	switch {
	case errors.Is(err, yttranscript.ErrVideoUnavailable),
		errors.Is(err, yttranscript.ErrTranscriptUnavailable),
		errors.As(err, &netErr):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUnavailable
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitUsage
}

// printCatalog renders the language catalog as an aligned table.
func printCatalog(result *yttranscript.Result) {
	fmt.Println("Available languages:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, opt := range result.Catalog {
		marker := ""
		if opt.Generated {
			marker = "(auto-generated)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", opt.Code, opt.Name, marker)
	}
	w.Flush()
}

// confirmOverwrite asks on the terminal whether an existing file may be
// replaced. Only an explicit yes proceeds.
func confirmOverwrite(path string) (bool, error) {
	fmt.Fprintf(os.Stderr, "File %q already exists. Overwrite? [y/N]: ", path)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
