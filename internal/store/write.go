package store

import (
	"context"
	"fmt"

	"github.com/roach88/signalctl/internal/traffic"
)

// Save replaces every row with signals inside one transaction.
// Row order is recorded in seq so Load can reproduce it.
func (b *SQLiteBackend) Save(ctx context.Context, signals []traffic.Signal) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save signals: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM signals`); err != nil {
		return fmt.Errorf("save signals: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO signals
		(seq, id, location, density, timing, congested)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save signals: prepare: %w", err)
	}
	defer stmt.Close()

	for i, s := range signals {
		congested := 0
		if s.Congested() {
			congested = 1
		}
		if _, err := stmt.ExecContext(ctx, i+1, s.ID, s.Location, s.Density, s.Timing, congested); err != nil {
			return fmt.Errorf("save signals: insert %d: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save signals: commit: %w", err)
	}
	return nil
}
