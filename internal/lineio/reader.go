// Package lineio reads newline-terminated text with a per-line size limit.
//
// Unlike bufio.Scanner, an overlong line does not stop the reader: it is
// consumed, reported as ErrLineTooLong, and the next call continues with the
// following line.
package lineio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// DefaultMaxLine is the line limit used for backing files and shell input.
const DefaultMaxLine = 1 << 20

// ErrLineTooLong is returned for a line longer than the reader's limit.
var ErrLineTooLong = errors.New("line too long")

// Reader yields one line at a time, without its line terminator.
type Reader struct {
	br   *bufio.Reader
	max  int
	line int
	buf  []byte
}

// NewReader returns a Reader over r that accepts lines of at most max bytes.
func NewReader(r io.Reader, max int) *Reader {
	return &Reader{br: bufio.NewReader(r), max: max}
}

// Next returns the next line. The slice is only valid until the next call.
//
// Returns io.EOF once input is exhausted; a final line without a trailing
// newline is still returned first. An overlong line yields ErrLineTooLong
// and is discarded. Any other error is from the underlying reader.
func (r *Reader) Next() ([]byte, error) {
	r.buf = r.buf[:0]
	read := false

	for {
		chunk, err := r.br.ReadSlice('\n')
		if len(chunk) > 0 {
			read = true
		}
		// Stop collecting once the line is known to be too long.
		if len(r.buf) <= r.max+1 {
			r.buf = append(r.buf, chunk...)
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if !read {
			return nil, io.EOF
		}

		r.line++
		line := trimEOL(r.buf)
		if len(line) > r.max {
			return nil, ErrLineTooLong
		}
		return line, nil
	}
}

// Line returns the 1-based number of the line last returned by Next,
// including lines reported as too long.
func (r *Reader) Line() int {
	return r.line
}

func trimEOL(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte("\n"))
	return bytes.TrimSuffix(b, []byte("\r"))
}
