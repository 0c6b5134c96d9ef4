package output

import (
	"bytes"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func seq(lines ...string) iter.Seq[string] {
	return slices.Values(lines)
}

func TestSink_StdoutRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(Destination{}, WithStdout(&buf))

	n, err := sink.Write(seq("[00:00:00] Hello world", "[00:00:05] Goodbye"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("lines written = %d, want 2", n)
	}

	want := "[00:00:00] Hello world\n[00:00:05] Goodbye\n"
	if buf.String() != want {
		t.Errorf("stdout = %q, want %q", buf.String(), want)
	}
}

func TestSink_StdoutEmptySequence(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(Destination{}, WithStdout(&buf))

	n, err := sink.Write(seq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Errorf("wrote %d lines %q, want nothing", n, buf.String())
	}
}

func TestSink_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")
	sink := NewSink(Destination{Path: path})

	n, err := sink.Write(seq("- Hello world", "- Goodbye"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("lines written = %d, want 2", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "- Hello world\n- Goodbye\n" {
		t.Errorf("file contents = %q", string(data))
	}
}

func TestSink_FileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "transcript.txt")
	sink := NewSink(Destination{Path: path})

	if _, err := sink.Write(seq("line")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestSink_FileConflictLeavesContentsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	sink := NewSink(Destination{Path: path, Overwrite: PolicyFail})
	_, err := sink.Write(seq("new content"))

	var conflictErr *FileConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected *FileConflictError, got %T: %v", err, err)
	}
	if conflictErr.Path != path {
		t.Errorf("FileConflictError.Path = %q, want %q", conflictErr.Path, path)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Errorf("existing file was modified: %q", string(data))
	}
}

func TestSink_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	sink := NewSink(Destination{Path: path, Overwrite: PolicyForce})
	if _, err := sink.Write(seq("replaced")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "replaced\n" {
		t.Errorf("file contents = %q, want %q", string(data), "replaced\n")
	}
}

func TestSink_PromptAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	asked := ""
	confirm := func(p string) (bool, error) {
		asked = p
		return true, nil
	}

	sink := NewSink(Destination{Path: path, Overwrite: PolicyPrompt}, WithConfirm(confirm))
	if _, err := sink.Write(seq("replaced")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asked != path {
		t.Errorf("confirm asked for %q, want %q", asked, path)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "replaced\n" {
		t.Errorf("file contents = %q, want %q", string(data), "replaced\n")
	}
}

func TestSink_PromptDeclined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	confirm := func(p string) (bool, error) { return false, nil }
	sink := NewSink(Destination{Path: path, Overwrite: PolicyPrompt}, WithConfirm(confirm))

	_, err := sink.Write(seq("replaced"))
	if !errors.Is(err, ErrOverwriteDeclined) {
		t.Fatalf("expected ErrOverwriteDeclined, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Errorf("declined overwrite still modified the file: %q", string(data))
	}
}

func TestSink_PromptWithoutConfirmRefuses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	sink := NewSink(Destination{Path: path, Overwrite: PolicyPrompt})
	_, err := sink.Write(seq("replaced"))

	var conflictErr *FileConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected *FileConflictError, got %T: %v", err, err)
	}
}

func TestSink_PromptNotAskedWhenFileAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")

	confirm := func(p string) (bool, error) {
		t.Error("confirm called for a non-existent file")
		return false, nil
	}
	sink := NewSink(Destination{Path: path, Overwrite: PolicyPrompt}, WithConfirm(confirm))

	if _, err := sink.Write(seq("line")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSink_FileWriteErrorReportsUnderlyingCause(t *testing.T) {
	dir := t.TempDir()
	// The destination's parent is a regular file, so directory creation fails.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	sink := NewSink(Destination{Path: filepath.Join(blocker, "out.txt")})
	_, err := sink.Write(seq("line"))

	var outErr *FileOutputError
	if !errors.As(err, &outErr) {
		t.Fatalf("expected *FileOutputError, got %T: %v", err, err)
	}
	if outErr.Err == nil {
		t.Error("FileOutputError does not carry the underlying OS error")
	}
}

func TestSink_FileUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")
	sink := NewSink(Destination{Path: path})

	line := "- **[00:00:00]** こんにちは 世界 🎬"
	if _, err := sink.Write(seq(line)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "こんにちは 世界 🎬") {
		t.Errorf("unicode lost in file output: %q", string(data))
	}
}

func TestAtomicWriter_AbortLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	aw, err := NewAtomicWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := aw.Write([]byte("partial")); err != nil {
		t.Fatal(err)
	}
	if err := aw.Abort(); err != nil {
		t.Fatalf("abort: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("aborted write left the destination file behind")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("aborted write left temp files: %v", entries)
	}
}

func TestAtomicWriter_CommitReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	aw, err := NewAtomicWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := aw.Write([]byte("new")); err != nil {
		t.Fatal(err)
	}
	if err := aw.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("file contents = %q, want %q", string(data), "new")
	}
}
