package yttranscript

import (
	"yttranscript/output"
	"yttranscript/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, yttranscript.ErrVideoUnavailable) {
//		fmt.Println("Video is private or deleted")
//	}
//
// Using errors.As() for typed errors:
//
//	var langErr *yttranscript.LanguageNotFoundError
//	if errors.As(err, &langErr) {
//		fmt.Printf("Not available in %s; options: %v\n",
//			langErr.Requested, langErr.Catalog.Codes())
//	}

// Type aliases for convenient error handling.
type (
	// InvalidReferenceError indicates the input is not a recognized video
	// reference.
	InvalidReferenceError = youtube.InvalidReferenceError
	// LanguageNotFoundError indicates the requested language is absent;
	// it carries the full catalog of available languages.
	LanguageNotFoundError = youtube.LanguageNotFoundError
	// NetworkError indicates a transient failure that survived all retries;
	// it carries the attempt count and last underlying cause.
	NetworkError = youtube.NetworkError
	// FileConflictError indicates the destination file exists and the
	// overwrite policy forbids replacing it.
	FileConflictError = output.FileConflictError
	// FileOutputError indicates an OS-level failure writing the destination.
	FileOutputError = output.FileOutputError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrVideoUnavailable indicates the video is private, deleted, or
	// otherwise not playable.
	ErrVideoUnavailable = youtube.ErrVideoUnavailable
	// ErrTranscriptUnavailable indicates the video has no caption tracks.
	ErrTranscriptUnavailable = youtube.ErrTranscriptUnavailable
	// ErrOverwriteDeclined indicates the overwrite prompt was answered no.
	ErrOverwriteDeclined = output.ErrOverwriteDeclined
)
