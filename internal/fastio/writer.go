package fastio

import (
	"bufio"
	"io"
	"strconv"
)

// Writer is a buffered decimal writer. Integers are rendered with
// strconv.AppendInt into a fixed scratch array, so answering a query never
// allocates.
type Writer struct {
	w       *bufio.Writer
	scratch [24]byte
}

// NewWriter wraps w with a buffer of size bytes.
func NewWriter(w io.Writer, size int) *Writer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Writer{w: bufio.NewWriterSize(w, size)}
}

// Int64 writes v in decimal without a separator.
func (w *Writer) Int64(v int64) error {
	_, err := w.w.Write(strconv.AppendInt(w.scratch[:0], v, 10))
	return err
}

// Line writes v in decimal followed by '\n'.
func (w *Writer) Line(v int64) error {
	b := strconv.AppendInt(w.scratch[:0], v, 10)
	b = append(b, '\n')
	_, err := w.w.Write(b)
	return err
}

// Byte writes a single byte.
func (w *Writer) Byte(c byte) error {
	return w.w.WriteByte(c)
}

// String writes s verbatim.
func (w *Writer) String(s string) error {
	_, err := w.w.WriteString(s)
	return err
}

// Flush pushes buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
