package traffic

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// CongestionThreshold is the density above which a signal counts as congested.
const CongestionThreshold = 80

// MaxLocationLength bounds a location in bytes. Any accepted location encodes
// to a backing-file line well under the loaders' line limit.
const MaxLocationLength = 64 << 10

// Signal is one traffic signal record.
type Signal struct {
	ID       int
	Location string
	Density  int // congestion level, nominally 0-100
	Timing   int // green light duration in seconds
}

// Congested reports whether the signal's density exceeds CongestionThreshold.
func (s Signal) Congested() bool {
	return s.Density > CongestionThreshold
}

// Status returns the display label for the congestion state.
func (s Signal) Status() string {
	if s.Congested() {
		return "Congested"
	}
	return "Normal"
}

// String renders the signal the way the shell lists it.
func (s Signal) String() string {
	return fmt.Sprintf("Signal ID: %d | Location: %s | Traffic Density: %d%% | Green Light: %ds | Status: %s",
		s.ID, s.Location, s.Density, s.Timing, s.Status())
}

// NormalizeLocation trims surrounding whitespace and converts the result to
// Unicode NFC so that visually identical names are persisted identically.
func NormalizeLocation(loc string) string {
	return norm.NFC.String(strings.TrimSpace(loc))
}

// ValidateLocation reports ErrInvalidLocation for text that cannot be stored
// one record per line: invalid UTF-8, line breaks, or more than
// MaxLocationLength bytes.
func ValidateLocation(loc string) error {
	switch {
	case !utf8.ValidString(loc):
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidLocation)
	case strings.ContainsAny(loc, "\r\n"):
		return fmt.Errorf("%w: contains a line break", ErrInvalidLocation)
	case len(loc) > MaxLocationLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidLocation, MaxLocationLength)
	}
	return nil
}
