// Package youtube resolves video references and retrieves caption transcripts
// from YouTube's InnerTube and timedtext endpoints.
package youtube

import (
	"net/url"
	"strings"
)

// VideoIDLength is the length of a canonical YouTube video identifier.
const VideoIDLength = 11

// VideoRef is a resolved canonical video identifier. It is constructed only
// by ParseVideoRef and never exists with an invalid ID.
type VideoRef struct {
	// ID is the canonical 11-character video identifier.
	ID string
	// Input is the original reference string the ID was resolved from.
	Input string
}

// WatchURL returns the canonical watch page URL for the video.
func (r VideoRef) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + r.ID
}

// String returns the video ID.
func (r VideoRef) String() string { return r.ID }

// ParseVideoRef resolves a raw reference string to a VideoRef. The input may
// be a full URL in any of YouTube's known shapes (watch, youtu.be, embed,
// shorts, live, /v/) or a bare 11-character video ID. Unrelated query
// parameters are ignored; a playlist parameter alongside a video parameter is
// not an error. No network access is performed.
func ParseVideoRef(input string) (VideoRef, error) {
	trimmed := strings.TrimSpace(input)

	if isVideoID(trimmed) {
		return VideoRef{ID: trimmed, Input: input}, nil
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return VideoRef{}, &InvalidReferenceError{Input: input}
	}

	host := strings.ToLower(parsed.Hostname())
	var id string

	switch {
	case host == "youtu.be":
		id = firstPathElement(parsed.Path)
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		id = videoIDFromYouTubePath(parsed)
	default:
		return VideoRef{}, &InvalidReferenceError{Input: input}
	}

	if !isVideoID(id) {
		return VideoRef{}, &InvalidReferenceError{Input: input}
	}

	return VideoRef{ID: id, Input: input}, nil
}

// videoIDFromYouTubePath extracts the video ID from a youtube.com URL.
func videoIDFromYouTubePath(u *url.URL) string {
	if u.Path == "/watch" {
		// The v parameter wins over list and any other query parameters.
		return u.Query().Get("v")
	}

	for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
		if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
			return firstPathElement(rest)
		}
	}

	return ""
}

// firstPathElement returns the path up to the first slash, with any leading
// slash removed.
func firstPathElement(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

// isVideoID reports whether s matches the video identifier grammar:
// exactly 11 URL-safe base64 characters.
func isVideoID(s string) bool {
	if len(s) != VideoIDLength {
		return false
	}
	for _, c := range []byte(s) {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
