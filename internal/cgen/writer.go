// Package cgen writes the C source that opack generates: the file header,
// one handler per packed file and one dispatch handler per directory.
package cgen

import (
	"io"

	"github.com/pkg/errors"
)

// Writer emits generated C code to an underlying stream. The first write
// error is kept and every later write becomes a no-op, so callers check Err
// once after a batch of writes.
type Writer struct {
	out    io.Writer
	err    error
	offset int64
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write implements io.Writer, so templates and the byte array can stream
// straight through.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.out.Write(p)
	w.offset += int64(n)
	if err != nil {
		w.err = errors.Wrap(err, "write generated code")
	}
	return n, w.err
}

func (w *Writer) WriteString(s string) {
	io.WriteString(w, s)
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Length returns the number of bytes written so far.
func (w *Writer) Length() int64 {
	return w.offset
}
