package table

import (
	"fmt"
	"strings"
)

// Resolve returns the first candidate column present in t, in candidate
// priority order. The table's physical column order never influences the
// choice. ok is false when no candidate matches; Resolve itself never errors.
func Resolve(t *Table, candidates []string) (string, bool) {
	for _, c := range candidates {
		if t.Has(c) {
			return c, true
		}
	}
	return "", false
}

// MissingColumnError reports that no candidate column was found for a
// semantic role. The message enumerates both the attempted candidates and
// the columns actually available, so it can be surfaced to users as-is.
type MissingColumnError struct {
	Role       string
	Candidates []string
	Available  []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("no column found for %s; tried: %s; available columns: %s",
		e.Role,
		strings.Join(e.Candidates, ", "),
		strings.Join(e.Available, ", "),
	)
}

// NewMissingColumnError builds a MissingColumnError for role against t.
func NewMissingColumnError(t *Table, role string, candidates ...string) *MissingColumnError {
	return &MissingColumnError{
		Role:       role,
		Candidates: candidates,
		Available:  t.Columns(),
	}
}
