package store

import (
	"context"
	"fmt"

	"github.com/roach88/signalctl/internal/traffic"
)

// Load returns all signals ordered by insertion sequence.
// The stored congested column is ignored; congestion is derived from density.
//
// Returns an empty slice (not nil) if the table is empty.
func (b *SQLiteBackend) Load(ctx context.Context) ([]traffic.Signal, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT id, location, density, timing
		FROM signals
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	signals := []traffic.Signal{}
	for rows.Next() {
		var s traffic.Signal
		if err := rows.Scan(&s.ID, &s.Location, &s.Density, &s.Timing); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		signals = append(signals, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signals: %w", err)
	}

	return signals, nil
}

// count returns the number of stored rows.
// Used for testing.
func (b *SQLiteBackend) count(ctx context.Context) (int, error) {
	var n int
	if err := b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM signals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count signals: %w", err)
	}
	return n, nil
}
