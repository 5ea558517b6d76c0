package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/roach88/signalctl/internal/lineio"
	"github.com/roach88/signalctl/internal/traffic"
)

// MaxLineSize bounds a single backing-file line. Longer lines are skipped.
const MaxLineSize = lineio.DefaultMaxLine

// decodeLines feeds every non-blank line of r to decode. Lines rejected by
// decode, and lines over MaxLineSize, are recorded as skipped.
func decodeLines(r io.Reader, decode func(line []byte) (traffic.Signal, string)) (Decoded, error) {
	out := Decoded{Signals: []traffic.Signal{}}
	lr := lineio.NewReader(r, MaxLineSize)

	for {
		line, err := lr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if errors.Is(err, lineio.ErrLineTooLong) {
			out.Skipped = append(out.Skipped, &traffic.MalformedRecordError{
				Line:   lr.Line(),
				Reason: fmt.Sprintf("line exceeds %d bytes", MaxLineSize),
			})
			continue
		}
		if err != nil {
			return out, err
		}
		if len(trimSpace(line)) == 0 {
			continue
		}

		s, reason := decode(line)
		if reason != "" {
			out.Skipped = append(out.Skipped, &traffic.MalformedRecordError{
				Line:   lr.Line(),
				Text:   string(line),
				Reason: reason,
			})
			continue
		}
		out.Signals = append(out.Signals, s)
	}
}

func trimSpace(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}
