package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/roach88/signalctl/internal/codec"
	"github.com/roach88/signalctl/internal/traffic"
)

// Backend persists the full ordered collection of signals.
type Backend interface {
	// Load returns every stored signal in stored order.
	// An absent backing store yields an empty slice, not an error.
	Load(ctx context.Context) ([]traffic.Signal, error)

	// Save replaces the stored collection with signals.
	Save(ctx context.Context, signals []traffic.Signal) error

	Close() error
}

// FileBackend stores signals in a flat file using a codec.
type FileBackend struct {
	Path  string
	Codec codec.Codec
}

// NewFileBackend returns a FileBackend for path using c.
func NewFileBackend(path string, c codec.Codec) *FileBackend {
	return &FileBackend{Path: path, Codec: c}
}

// Load reads the file in full. Malformed lines are logged at debug level
// and dropped.
func (b *FileBackend) Load(ctx context.Context) ([]traffic.Signal, error) {
	f, err := os.Open(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("backing file not found, starting empty", "path", b.Path)
		return []traffic.Signal{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", b.Path, err)
	}
	defer f.Close()

	decoded, err := b.Codec.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", b.Path, err)
	}

	for _, skip := range decoded.Skipped {
		slog.Debug("skipping malformed record",
			"path", b.Path,
			"line", skip.Line,
			"reason", skip.Reason,
		)
	}

	return decoded.Signals, nil
}

// Save truncates the file and writes every signal.
// The write is not atomic: a crash mid-write can leave a partial file.
func (b *FileBackend) Save(ctx context.Context, signals []traffic.Signal) error {
	f, err := os.OpenFile(b.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", b.Path, err)
	}

	w := bufio.NewWriter(f)
	if err := b.Codec.Encode(w, signals); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", b.Path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", b.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", b.Path, err)
	}
	return nil
}

// Close is a no-op; the file is opened per operation.
func (b *FileBackend) Close() error {
	return nil
}
