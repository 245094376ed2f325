package worklist

import "errors"

var (
	// ErrUnknownSortKey is returned by ParseSortKey for values that do not name a key.
	ErrUnknownSortKey = errors.New("unknown sort key")
)
