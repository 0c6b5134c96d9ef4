// Package output writes formatted transcript lines to a display stream or a
// file, enforcing overwrite protection and never presenting a partial write
// as success.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

// Policy controls what happens when the destination file already exists.
type Policy int

const (
	// PolicyFail refuses to touch an existing file.
	PolicyFail Policy = iota
	// PolicyPrompt defers the decision to the caller's Confirm function.
	PolicyPrompt
	// PolicyForce truncates and overwrites.
	PolicyForce
)

// Destination names where formatted output goes. An empty Path means the
// display stream (standard output).
type Destination struct {
	// Path is the output file path; empty selects the display stream.
	Path string
	// Overwrite is the policy applied when Path already exists.
	Overwrite Policy
}

// IsStdout reports whether the destination is the display stream.
func (d Destination) IsStdout() bool { return d.Path == "" }

// ConfirmFunc decides whether an existing file may be overwritten. It is
// supplied by the caller; the sink itself performs no interactive I/O.
type ConfirmFunc func(path string) (bool, error)

// ErrOverwriteDeclined indicates the caller answered the overwrite prompt
// negatively. No data was written.
var ErrOverwriteDeclined = errors.New("output: overwrite declined")

// FileConflictError indicates the destination exists and the policy forbids
// overwriting it. Nothing was written.
type FileConflictError struct {
	// Path is the conflicting destination path.
	Path string
}

// Error returns a string representation of the conflict error.
func (e *FileConflictError) Error() string {
	return fmt.Sprintf("output: file already exists: %s", e.Path)
}

// FileOutputError indicates an OS-level failure while writing the
// destination file. The destination was not replaced.
type FileOutputError struct {
	// Path is the destination path.
	Path string
	// Err is the underlying OS error.
	Err error
}

// Error returns a string representation of the output error.
func (e *FileOutputError) Error() string {
	return fmt.Sprintf("output: write %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *FileOutputError) Unwrap() error { return e.Err }

// Sink consumes a formatted line sequence and writes it to its destination.
type Sink struct {
	dest    Destination
	stdout  io.Writer
	confirm ConfirmFunc
}

// SinkOption configures the sink.
type SinkOption func(*Sink)

// WithStdout redirects the display stream, primarily for tests.
func WithStdout(w io.Writer) SinkOption {
	return func(s *Sink) {
		s.stdout = w
	}
}

// WithConfirm supplies the overwrite decision function for PolicyPrompt.
func WithConfirm(confirm ConfirmFunc) SinkOption {
	return func(s *Sink) {
		s.confirm = confirm
	}
}

// NewSink creates a sink for the given destination.
func NewSink(dest Destination, opts ...SinkOption) *Sink {
	s := &Sink{
		dest:   dest,
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write consumes the line sequence once, appending a newline to each line,
// and returns the number of lines written. The display stream is flushed
// after every line so output starts before the sequence ends; file output
// goes through a temp file and rename so a failed write never leaves a
// partial file at the destination.
func (s *Sink) Write(lines iter.Seq[string]) (int, error) {
	if s.dest.IsStdout() {
		return s.writeStream(lines)
	}
	return s.writeFile(lines)
}

// writeStream writes lines to the display stream with per-line flushing.
func (s *Sink) writeStream(lines iter.Seq[string]) (int, error) {
	w := bufio.NewWriter(s.stdout)
	count := 0
	for line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return count, err
		}
		if err := w.WriteByte('\n'); err != nil {
			return count, err
		}
		if err := w.Flush(); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// writeFile writes lines to the destination file under the overwrite policy.
func (s *Sink) writeFile(lines iter.Seq[string]) (int, error) {
	if err := s.checkOverwrite(); err != nil {
		return 0, err
	}

	aw, err := NewAtomicWriter(s.dest.Path)
	if err != nil {
		return 0, &FileOutputError{Path: s.dest.Path, Err: err}
	}

	w := bufio.NewWriter(aw)
	count := 0
	for line := range lines {
		if _, err := w.WriteString(line); err != nil {
			aw.Abort()
			return 0, &FileOutputError{Path: s.dest.Path, Err: err}
		}
		if err := w.WriteByte('\n'); err != nil {
			aw.Abort()
			return 0, &FileOutputError{Path: s.dest.Path, Err: err}
		}
		count++
	}

	if err := w.Flush(); err != nil {
		aw.Abort()
		return 0, &FileOutputError{Path: s.dest.Path, Err: err}
	}
	if err := aw.Commit(); err != nil {
		return 0, &FileOutputError{Path: s.dest.Path, Err: err}
	}

	return count, nil
}

// checkOverwrite applies the overwrite policy against the current state of
// the destination path. Nothing is created or truncated here.
func (s *Sink) checkOverwrite() error {
	if _, err := os.Stat(s.dest.Path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &FileOutputError{Path: s.dest.Path, Err: err}
	}

	switch s.dest.Overwrite {
	case PolicyForce:
		return nil
	case PolicyPrompt:
		if s.confirm == nil {
			// No way to ask; refusing is the only answer that cannot
			// clobber data.
			return &FileConflictError{Path: s.dest.Path}
		}
		ok, err := s.confirm(s.dest.Path)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOverwriteDeclined
		}
		return nil
	default:
		return &FileConflictError{Path: s.dest.Path}
	}
}
