package traffic

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned when registering an ID already in the store.
	ErrDuplicateID = errors.New("signal id already exists")

	// ErrNotFound is returned when no record matches the requested ID.
	ErrNotFound = errors.New("signal not found")

	// ErrInvalidLocation is returned when a location cannot be stored.
	ErrInvalidLocation = errors.New("invalid location")
)

// MalformedRecordError describes a backing-file line that could not be
// decoded into a Signal. Loaders skip these lines rather than failing.
type MalformedRecordError struct {
	Line   int    // 1-based line number in the source
	Text   string // raw line content
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
}

// InvalidChoiceError is returned for a menu selection outside the known choices.
type InvalidChoiceError struct {
	Input string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid menu choice %q", e.Input)
}

// IsNotFound returns true if err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidLocation returns true if err wraps ErrInvalidLocation.
func IsInvalidLocation(err error) bool {
	return errors.Is(err, ErrInvalidLocation)
}

// IsDuplicate returns true if err wraps ErrDuplicateID.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateID)
}
