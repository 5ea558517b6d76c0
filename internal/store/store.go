package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/signalctl/internal/traffic"
)

// Store is the ordered in-memory collection of signals.
//
// Store is not safe for concurrent use.
type Store struct {
	backend Backend
	signals []traffic.Signal
}

// New creates an empty Store persisting through backend.
// Call Load to populate it from existing storage.
func New(backend Backend) *Store {
	return &Store{backend: backend, signals: []traffic.Signal{}}
}

// Load replaces the in-memory collection with the backend's contents.
// IDs are not re-checked for uniqueness.
func (s *Store) Load(ctx context.Context) error {
	signals, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load signals: %w", err)
	}
	s.signals = signals
	slog.Debug("signals loaded", "count", len(signals))
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// Register appends sig after checking its ID is not already present and its
// location can be stored. The location is normalized before it is stored.
func (s *Store) Register(ctx context.Context, sig traffic.Signal) error {
	if s.indexOf(sig.ID) >= 0 {
		return fmt.Errorf("register signal %d: %w", sig.ID, traffic.ErrDuplicateID)
	}
	if err := traffic.ValidateLocation(sig.Location); err != nil {
		return fmt.Errorf("register signal %d: %w", sig.ID, err)
	}
	sig.Location = traffic.NormalizeLocation(sig.Location)

	next := append(slices.Clone(s.signals), sig)
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("register signal %d: %w", sig.ID, err)
	}
	return nil
}

// Find returns the first signal with the given ID.
func (s *Store) Find(id int) (traffic.Signal, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return traffic.Signal{}, false
	}
	return s.signals[i], true
}

// UpdateDensity sets the density of signal id. Congestion follows from the
// new density.
func (s *Store) UpdateDensity(ctx context.Context, id, density int) error {
	return s.update(ctx, "update density", id, func(sig *traffic.Signal) {
		sig.Density = density
	})
}

// UpdateTiming sets the green light duration of signal id.
func (s *Store) UpdateTiming(ctx context.Context, id, timing int) error {
	return s.update(ctx, "update timing", id, func(sig *traffic.Signal) {
		sig.Timing = timing
	})
}

// Delete removes signal id, keeping the order of the remaining signals.
func (s *Store) Delete(ctx context.Context, id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete signal %d: %w", id, traffic.ErrNotFound)
	}

	next := slices.Delete(slices.Clone(s.signals), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("delete signal %d: %w", id, err)
	}
	return nil
}

// List returns a copy of all signals in order.
func (s *Store) List() []traffic.Signal {
	return slices.Clone(s.signals)
}

// Len returns the number of signals.
func (s *Store) Len() int {
	return len(s.signals)
}

// Persist writes the current collection to the backend.
func (s *Store) Persist(ctx context.Context) error {
	if err := s.backend.Save(ctx, s.signals); err != nil {
		return fmt.Errorf("persist signals: %w", err)
	}
	return nil
}

func (s *Store) update(ctx context.Context, op string, id int, apply func(*traffic.Signal)) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%s %d: %w", op, id, traffic.ErrNotFound)
	}

	next := slices.Clone(s.signals)
	apply(&next[i])
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("%s %d: %w", op, id, err)
	}
	return nil
}

// commit saves next and installs it only if the save succeeded.
func (s *Store) commit(ctx context.Context, next []traffic.Signal) error {
	if err := s.backend.Save(ctx, next); err != nil {
		return err
	}
	s.signals = next
	return nil
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.signals, func(sig traffic.Signal) bool {
		return sig.ID == id
	})
}
