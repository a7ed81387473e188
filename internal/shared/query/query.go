// Package query implements the shared list pipeline: sort by a named
// key with an id tie-break, then apply offset/limit. Filtering happens
// in the services before projection, so the pipeline only sees rows
// that survived it.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownSort    = errors.New("unknown sort key")
	ErrNegativeLimit  = errors.New("limit must not be negative")
	ErrNegativeOffset = errors.New("offset must not be negative")
)

// Params are the caller-supplied list controls after defaults are
// applied.
type Params struct {
	Sort   string
	Limit  int
	Offset int
}

// Less orders two rows. A key comparator defines the primary order,
// the table's Tie breaks equal rows.
type Less[R any] func(a, b R) bool

// Table holds the sort keys a list endpoint accepts. Tie must be a
// strict order over row ids so that equal primary keys page out
// deterministically.
type Table[R any] struct {
	Keys map[string]Less[R]
	Tie  Less[R]
}

// Run sorts a copy of rows by params.Sort and slices out the requested
// page. The input slice is never reordered.
func (t Table[R]) Run(rows []R, params Params) ([]R, error) {
	primary, ok := t.Keys[params.Sort]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSort, params.Sort)
	}
	if params.Limit < 0 {
		return nil, ErrNegativeLimit
	}
	if params.Offset < 0 {
		return nil, ErrNegativeOffset
	}

	sorted := make([]R, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if primary(a, b) {
			return true
		}
		if primary(b, a) {
			return false
		}
		return t.Tie(a, b)
	})

	lo := params.Offset
	if lo > len(sorted) {
		lo = len(sorted)
	}
	// Limit has no upper bound, so lo+Limit can overflow; compare
	// against the remaining length instead of adding.
	hi := len(sorted)
	if params.Limit < len(sorted)-lo {
		hi = lo + params.Limit
	}
	return sorted[lo:hi], nil
}

// ContainsFold reports whether s contains substr ignoring case. An
// empty substr matches everything.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
