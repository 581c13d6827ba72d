package sim

import (
	"fmt"

	"github.com/pkg/errors"
)

// IndexOutOfRangeError is returned whenever a node id passed across the
// Network API falls outside [0, N).
type IndexOutOfRangeError struct {
	Index int
	N     int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("node id %d out of range [0, %d)", e.Index, e.N)
}

func indexOutOfRange(index, n int) error {
	return errors.WithStack(&IndexOutOfRangeError{Index: index, N: n})
}

// GroupNotJoinedError would be returned by CancelGroup for a gid the node
// has not joined, except that spec mandates this be a no-op rather than a
// surfaced error (see DESIGN.md). The type is kept so callers and tests
// can name the case CancelGroup is deliberately not raising.
type GroupNotJoinedError struct {
	NodeID int
	GID    int
}

func (e *GroupNotJoinedError) Error() string {
	return fmt.Sprintf("node %d has not joined group %d", e.NodeID, e.GID)
}
