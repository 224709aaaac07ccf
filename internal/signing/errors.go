package signing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncomplete is matched by every error reporting unusable release credentials.
var ErrIncomplete = errors.New("release signing configuration incomplete")

// ErrUnknownVariant is returned for Variant values outside Variants().
var ErrUnknownVariant = errors.New("unknown build variant")

// IncompleteError describes why release credentials could not be built.
type IncompleteError struct {
	// Path of the properties file that was consulted.
	Path string
	// Absent is true when the file itself was missing or unreadable.
	Absent bool
	// Missing holds the required keys that were absent or blank, in KeyOrder.
	Missing []string
}

func (e *IncompleteError) Error() string {
	if e.Absent {
		return fmt.Sprintf("release signing config not found: %s is missing or unreadable, cannot build release", e.Path)
	}
	return fmt.Sprintf("release signing config incomplete in %s: missing or empty %s, cannot build release",
		e.Path, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncomplete
}
