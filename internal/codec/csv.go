package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/signalctl/internal/traffic"
)

const csvFields = 5

// CSV stores one signal per line as id,location,density,timing,congested.
//
// Every record occupies exactly one line, so a stray quote can only affect
// the line it is on. Locations containing line breaks cannot be encoded.
type CSV struct{}

// Name returns "csv".
func (CSV) Name() string { return "csv" }

// Encode writes one record per signal, quoting locations that need it.
func (CSV) Encode(w io.Writer, signals []traffic.Signal) error {
	cw := csv.NewWriter(w)
	for _, s := range signals {
		if strings.ContainsAny(s.Location, "\r\n") {
			return fmt.Errorf("encode signal %d: location contains a line break", s.ID)
		}
		congested := "0"
		if s.Congested() {
			congested = "1"
		}
		rec := []string{
			strconv.Itoa(s.ID),
			s.Location,
			strconv.Itoa(s.Density),
			strconv.Itoa(s.Timing),
			congested,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("encode signal %d: %w", s.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Decode reads one record per line. Lines that do not parse as quoted CSV
// are retried as a plain comma split, which is how the legacy format was
// written.
func (CSV) Decode(r io.Reader) (Decoded, error) {
	out, err := decodeLines(r, decodeCSVLine)
	if err != nil {
		return out, fmt.Errorf("read csv: %w", err)
	}
	return out, nil
}

func decodeCSVLine(line []byte) (traffic.Signal, string) {
	var reason string

	cr := csv.NewReader(bytes.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if rec, err := cr.Read(); err != nil {
		reason = err.Error()
	} else {
		s, r := decodeCSVRecord(rec)
		if r == "" {
			return s, ""
		}
		reason = r
	}

	// Legacy writers joined fields with bare commas and never quoted.
	if s, r := decodeCSVRecord(strings.Split(string(line), ",")); r == "" {
		return s, ""
	}
	return traffic.Signal{}, reason
}

func decodeCSVRecord(rec []string) (traffic.Signal, string) {
	if len(rec) != csvFields {
		return traffic.Signal{}, fmt.Sprintf("expected %d fields, got %d", csvFields, len(rec))
	}

	var nums [3]int
	for i, idx := range []int{0, 2, 3} {
		n, err := strconv.Atoi(strings.TrimSpace(rec[idx]))
		if err != nil {
			return traffic.Signal{}, fmt.Sprintf("field %d: %q is not an integer", idx+1, rec[idx])
		}
		nums[i] = n
	}

	switch strings.TrimSpace(rec[4]) {
	case "0", "1", "true", "false":
	default:
		return traffic.Signal{}, fmt.Sprintf("field 5: %q is not a congestion flag", rec[4])
	}

	return traffic.Signal{
		ID:       nums[0],
		Location: rec[1],
		Density:  nums[1],
		Timing:   nums[2],
	}, ""
}
