package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/signalctl/internal/traffic"
)

// JSONLines stores one signal per line as a JSON object.
type JSONLines struct{}

// jsonRecord is the on-disk shape. Pointer fields detect missing keys.
type jsonRecord struct {
	ID        *int    `json:"id"`
	Location  *string `json:"location"`
	Density   *int    `json:"density"`
	Timing    *int    `json:"timing"`
	Congested *bool   `json:"congested"`
}

// Name returns "jsonl".
func (JSONLines) Name() string { return "jsonl" }

// Encode writes one JSON object per signal, HTML characters unescaped.
// Locations must be valid UTF-8; encoding/json would otherwise replace the
// invalid bytes and the record would not load back as written.
func (JSONLines) Encode(w io.Writer, signals []traffic.Signal) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, s := range signals {
		congested := s.Congested()
		rec := jsonRecord{
			ID:        &s.ID,
			Location:  &s.Location,
			Density:   &s.Density,
			Timing:    &s.Timing,
			Congested: &congested,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode signal %d: %w", s.ID, err)
		}
	}
	return nil
}

// Decode reads one JSON object per line; blank lines are ignored.
func (JSONLines) Decode(r io.Reader) (Decoded, error) {
	out, err := decodeLines(r, decodeJSONRecord)
	if err != nil {
		return out, fmt.Errorf("read jsonl: %w", err)
	}
	return out, nil
}

func decodeJSONRecord(line []byte) (traffic.Signal, string) {
	var rec jsonRecord
	if err := json.Unmarshal(bytes.TrimSpace(line), &rec); err != nil {
		return traffic.Signal{}, err.Error()
	}

	switch {
	case rec.ID == nil:
		return traffic.Signal{}, "missing field \"id\""
	case rec.Location == nil:
		return traffic.Signal{}, "missing field \"location\""
	case rec.Density == nil:
		return traffic.Signal{}, "missing field \"density\""
	case rec.Timing == nil:
		return traffic.Signal{}, "missing field \"timing\""
	case rec.Congested == nil:
		return traffic.Signal{}, "missing field \"congested\""
	}

	return traffic.Signal{
		ID:       *rec.ID,
		Location: *rec.Location,
		Density:  *rec.Density,
		Timing:   *rec.Timing,
	}, ""
}
