// Package format renders transcripts as a lazy sequence of output lines.
//
// Lines are produced one segment at a time so that a multi-hour transcript
// is never materialized as a single string; the sink consumes and discards
// each line as it is written.
package format

import (
	"fmt"
	"iter"

	"yttranscript/youtube"
)

// Kind selects the output style.
type Kind int

const (
	// Plain renders `<timestamp> <text>` or bare text lines.
	Plain Kind = iota
	// Markdown renders bullet lines with bold timestamps.
	Markdown
)

// String returns the kind's command-line name.
func (k Kind) String() string {
	switch k {
	case Markdown:
		return "markdown"
	default:
		return "plain"
	}
}

// ParseKind converts a format name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "plain":
		return Plain, nil
	case "markdown":
		return Markdown, nil
	default:
		return Plain, fmt.Errorf("format: unknown kind %q (want plain or markdown)", name)
	}
}

// Options configures rendering. It is a pure value; construct once and pass
// by copy.
type Options struct {
	// Kind is the output style.
	Kind Kind
	// Timestamps includes a per-line timestamp prefix when true.
	Timestamps bool
}

// Lines returns a lazy, single-pass sequence with exactly one output line
// per caption segment. The sequence is not restartable; call Lines again
// with the same transcript to re-render. Segment text passes through
// unmodified, Unicode included.
func Lines(t *youtube.Transcript, opts Options) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, seg := range t.Segments {
			if !yield(renderSegment(seg, opts)) {
				return
			}
		}
	}
}

// renderSegment builds the output line for one segment. A segment with no
// start offset gets no timestamp prefix even when timestamps are requested.
func renderSegment(seg youtube.CaptionSegment, opts Options) string {
	var line string
	if opts.Kind == Markdown {
		line = "- "
	}
	if opts.Timestamps && seg.Start != nil {
		ts := Timestamp(*seg.Start)
		if opts.Kind == Markdown {
			line += "**" + ts + "** "
		} else {
			line += ts + " "
		}
	}
	return line + seg.Text
}

// Timestamp formats an offset in seconds as [HH:MM:SS], flooring to whole
// seconds and zero-padding each field to two digits.
func Timestamp(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("[%02d:%02d:%02d]", hours, minutes, secs)
}
