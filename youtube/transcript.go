package youtube

import "strings"

// CaptionSegment is one timed piece of transcript text. Start and Duration
// are in seconds from the beginning of the video; either may be absent.
type CaptionSegment struct {
	// Text is the segment content, Unicode preserved as delivered.
	Text string
	// Start is the offset in seconds, nil when the source omitted it.
	Start *float64
	// Duration is the segment length in seconds, nil when omitted.
	Duration *float64
}

// End returns start + duration, or nil when either is absent.
func (s CaptionSegment) End() *float64 {
	if s.Start == nil || s.Duration == nil {
		return nil
	}
	end := *s.Start + *s.Duration
	return &end
}

// Transcript is one language's caption track for one video. Segments are
// kept in the order delivered by the source.
type Transcript struct {
	// Ref identifies the video the transcript belongs to.
	Ref VideoRef
	// Language is the code of the fetched caption track.
	Language string
	// Generated is true for machine-generated (ASR) tracks.
	Generated bool
	// Translatable is true when YouTube offers translations of the track.
	Translatable bool
	// Segments are the caption segments in source order.
	Segments []CaptionSegment
}

// TotalDuration returns the end time of the last segment, or nil when the
// transcript is empty or the last segment has no timing.
func (t *Transcript) TotalDuration() *float64 {
	if len(t.Segments) == 0 {
		return nil
	}
	return t.Segments[len(t.Segments)-1].End()
}

// FullText returns the complete transcript text joined with spaces.
func (t *Transcript) FullText() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}
