package youtube

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for transcript operations.
var (
	// ErrVideoUnavailable indicates the video is private, deleted, or
	// otherwise not playable.
	ErrVideoUnavailable = errors.New("youtube: video unavailable")
	// ErrTranscriptUnavailable indicates the video has no caption tracks
	// or has transcripts disabled.
	ErrTranscriptUnavailable = errors.New("youtube: transcripts unavailable")
)

// InvalidReferenceError indicates the input string is neither a recognized
// YouTube URL shape nor an 11-character video ID.
type InvalidReferenceError struct {
	// Input is the original reference string.
	Input string
}

// Error returns a string representation of the invalid reference error.
func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("youtube: invalid video reference %q", e.Input)
}

// LanguageNotFoundError indicates the requested language is not in the
// video's caption catalog. It carries the full catalog so callers can
// present the available alternatives:
//
//	var langErr *youtube.LanguageNotFoundError
//	if errors.As(err, &langErr) {
//		for _, opt := range langErr.Catalog {
//			fmt.Printf("%s (%s)\n", opt.Code, opt.Name)
//		}
//	}
type LanguageNotFoundError struct {
	// Requested is the language code that was asked for.
	Requested string
	// Catalog lists the languages the video actually offers.
	Catalog LanguageCatalog
}

// Error returns a string representation of the language error.
func (e *LanguageNotFoundError) Error() string {
	return fmt.Sprintf("youtube: no transcript in language %q (available: %s)",
		e.Requested, strings.Join(e.Catalog.Codes(), ", "))
}

// NetworkError indicates a transient failure that persisted through all
// retry attempts.
type NetworkError struct {
	// Attempts is the number of attempts made before giving up.
	Attempts int
	// Err is the error from the final attempt.
	Err error
}

// Error returns a string representation of the network error.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("youtube: network failure after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *NetworkError) Unwrap() error { return e.Err }
