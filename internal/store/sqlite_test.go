package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/signalctl/internal/traffic"
)

func TestOpenSQLite_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer b.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpenSQLite_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		b, err := OpenSQLite(path)
		if err != nil {
			t.Fatalf("OpenSQLite() iteration %d failed: %v", i, err)
		}
		b.Close()
	}

	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("final OpenSQLite() failed: %v", err)
	}
	defer b.Close()

	var name string
	err = b.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='signals'").Scan(&name)
	if err != nil {
		t.Errorf("signals table not found after idempotent opens: %v", err)
	}
}

func TestOpenSQLite_Pragmas(t *testing.T) {
	b := createTestSQLite(t)

	tests := []struct {
		name     string
		expected string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
		{"user_version", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPragma(b.db, tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestOpenSQLite_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	if _, err := b.db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	b.Close()

	if _, err := OpenSQLite(path); err == nil {
		t.Fatal("OpenSQLite() should reject a newer schema version")
	}
}

func TestSQLite_LoadEmpty(t *testing.T) {
	b := createTestSQLite(t)

	signals, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if signals == nil || len(signals) != 0 {
		t.Errorf("Load() = %v, want empty non-nil slice", signals)
	}
}

func TestSQLite_SaveReplacesRows(t *testing.T) {
	ctx := context.Background()
	b := createTestSQLite(t)

	first := []traffic.Signal{
		{ID: 1, Location: "A", Density: 10, Timing: 10},
		{ID: 2, Location: "B", Density: 90, Timing: 20},
		{ID: 3, Location: "C", Density: 30, Timing: 30},
	}
	if err := b.Save(ctx, first); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	second := []traffic.Signal{
		{ID: 3, Location: "C", Density: 30, Timing: 30},
		{ID: 1, Location: "A", Density: 10, Timing: 10},
	}
	if err := b.Save(ctx, second); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	n, err := b.count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	got, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Errorf("Load() order = %v, want ids [3 1]", ids(got))
	}
}

func TestSQLite_StoresCongestedColumn(t *testing.T) {
	ctx := context.Background()
	b := createTestSQLite(t)

	if err := b.Save(ctx, []traffic.Signal{{ID: 1, Density: 81}, {ID: 2, Density: 80}}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	rows, err := b.db.Query("SELECT congested FROM signals ORDER BY seq")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	var flags []int
	for rows.Next() {
		var c int
		if err := rows.Scan(&c); err != nil {
			t.Fatal(err)
		}
		flags = append(flags, c)
	}
	if len(flags) != 2 || flags[0] != 1 || flags[1] != 0 {
		t.Errorf("congested column = %v, want [1 0]", flags)
	}
}

func TestSQLite_CanceledContext(t *testing.T) {
	b := createTestSQLite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Save(ctx, []traffic.Signal{{ID: 1}}); err == nil {
		t.Error("Save() with canceled context should fail")
	}
}
