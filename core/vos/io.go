package vos

import (
	"io"
)

// VIO holds the standard streams of a process.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// Stdio is a VIO over plain readers and writers. Streams that are already
// closers, like *os.File, are handed out unwrapped so children can inherit
// them directly.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

var _ VIO = (*Stdio)(nil)

// NewStdio creates a VIO, nil streams read as empty and discard writes.
func NewStdio(in io.Reader, out, err io.Writer) *Stdio {
	if in == nil {
		in = emptyReader{}
	}
	if out == nil {
		out = io.Discard
	}
	if err == nil {
		err = io.Discard
	}
	return &Stdio{In: in, Out: out, Err: err}
}

// NewNullIO creates a VIO that reads nothing and discards writes.
func NewNullIO() *Stdio {
	return NewStdio(nil, nil, nil)
}

func (s *Stdio) Stdin() io.ReadCloser {
	if rc, ok := s.In.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(s.In)
}

func (s *Stdio) Stdout() io.WriteCloser {
	return writeCloser(s.Out)
}

func (s *Stdio) Stderr() io.WriteCloser {
	return writeCloser(s.Err)
}

func writeCloser(w io.Writer) io.WriteCloser {
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}
	return nopWriteCloser{w}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, io.EOF }
