// Package traffic defines the traffic signal record managed by signalctl.
//
// This package contains the record type and its error kinds only. All other
// internal packages import traffic; traffic imports nothing internal.
//
// Key constraints:
//   - Congestion is derived from density and never stored on the record
//   - IDs are unique within a store, but only registration enforces it
//   - Density and timing are not range checked
package traffic
