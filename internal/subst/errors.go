package subst

import (
	"errors"
	"fmt"
)

// ErrInvalidTableEntry is matched by errors.Is for every *EntryError.
var ErrInvalidTableEntry = errors.New("invalid table entry")

// EntryError reports a degenerate pair in a Table.
type EntryError struct {
	Index       int    // position in the table (0-based)
	Replacement string // replacement of the offending pair, to help locate it
	Reason      string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("table entry %d (replacement %q): %s", e.Index, e.Replacement, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidTableEntry) true.
func (e *EntryError) Is(target error) bool {
	return target == ErrInvalidTableEntry
}
