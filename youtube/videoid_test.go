package youtube

import (
	"errors"
	"testing"
)

func TestParseVideoRef_RecognizedShapes(t *testing.T) {
	const want = "dQw4w9WgXcQ"

	inputs := []string{
		"dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLxyz&index=3",
		"https://www.youtube.com/watch?list=PLxyz&v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=30",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/live/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
	}

	for _, input := range inputs {
		ref, err := ParseVideoRef(input)
		if err != nil {
			t.Errorf("ParseVideoRef(%q) returned error: %v", input, err)
			continue
		}
		if ref.ID != want {
			t.Errorf("ParseVideoRef(%q).ID = %q, want %q", input, ref.ID, want)
		}
		if ref.Input != input {
			t.Errorf("ParseVideoRef(%q).Input = %q, want original input", input, ref.Input)
		}
	}
}

func TestParseVideoRef_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"short",
		"dQw4w9WgXc",               // 10 chars
		"dQw4w9WgXcQQ",             // 12 chars
		"dQw4w9WgXc!",              // bad character
		"https://example.com/watch?v=dQw4w9WgXcQ", // unrelated domain
		"https://vimeo.com/123456789",
		"https://www.youtube.com/watch",          // no v parameter
		"https://www.youtube.com/watch?list=PLx", // playlist only
		"https://www.youtube.com/channel/UCxxxx",
		"https://www.youtube.com/watch?v=tooshort",
		"not a url at all",
	}

	for _, input := range inputs {
		_, err := ParseVideoRef(input)
		if err == nil {
			t.Errorf("ParseVideoRef(%q) succeeded, want error", input)
			continue
		}
		var refErr *InvalidReferenceError
		if !errors.As(err, &refErr) {
			t.Errorf("ParseVideoRef(%q) returned %T, want *InvalidReferenceError", input, err)
			continue
		}
		if refErr.Input != input {
			t.Errorf("InvalidReferenceError.Input = %q, want %q", refErr.Input, input)
		}
	}
}

func TestVideoRef_WatchURL(t *testing.T) {
	ref, err := ParseVideoRef("dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got := ref.WatchURL(); got != want {
		t.Errorf("WatchURL() = %q, want %q", got, want)
	}
}

func TestParseVideoRef_SameRefForEquivalentInputs(t *testing.T) {
	bare, err := ParseVideoRef("dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	full, err := ParseVideoRef("https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLxyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bare.ID != full.ID {
		t.Errorf("equivalent inputs resolved to different IDs: %q vs %q", bare.ID, full.ID)
	}
}
