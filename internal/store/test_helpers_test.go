package store

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/roach88/signalctl/internal/codec"
	"github.com/roach88/signalctl/internal/traffic"
)

var errSaveFailed = errors.New("disk full")

// memBackend keeps the last saved collection in memory.
type memBackend struct {
	saved    []traffic.Signal
	saves    int
	failSave bool
}

func (m *memBackend) Load(ctx context.Context) ([]traffic.Signal, error) {
	return slices.Clone(m.saved), nil
}

func (m *memBackend) Save(ctx context.Context, signals []traffic.Signal) error {
	if m.failSave {
		return errSaveFailed
	}
	m.saves++
	m.saved = slices.Clone(signals)
	return nil
}

func (m *memBackend) Close() error { return nil }

// createTestSQLite opens a SQLite backend in a temp directory.
func createTestSQLite(t *testing.T) *SQLiteBackend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signals.db")
	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

// createTestFileBackend returns a file backend in a temp directory.
func createTestFileBackend(t *testing.T, format string) *FileBackend {
	t.Helper()
	c, err := codec.Lookup(format)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", format, err)
	}
	return NewFileBackend(filepath.Join(t.TempDir(), "signals."+format), c)
}

func ids(signals []traffic.Signal) []int {
	out := make([]int, len(signals))
	for i, s := range signals {
		out[i] = s.ID
	}
	return out
}
