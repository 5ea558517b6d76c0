package codec

import (
	"fmt"
	"io"
	"sort"

	"github.com/roach88/signalctl/internal/traffic"
)

// Codec serializes a full ordered collection of signals.
type Codec interface {
	// Name returns the format name used in configuration ("jsonl", "csv").
	Name() string

	// Encode writes every signal in order.
	Encode(w io.Writer, signals []traffic.Signal) error

	// Decode reads until end of input. Malformed lines are collected in
	// Decoded.Skipped; only I/O failures are returned as errors.
	Decode(r io.Reader) (Decoded, error)
}

// Decoded is the result of a Decode call.
type Decoded struct {
	Signals []traffic.Signal
	Skipped []*traffic.MalformedRecordError
}

var registry = map[string]Codec{
	"jsonl": JSONLines{},
	"csv":   CSV{},
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q: must be one of %v", name, Names())
	}
	return c, nil
}
