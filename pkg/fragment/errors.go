package fragment

import "errors"

var (
	// ErrEmptyPool is returned when a template slot refers to a pool with no entries.
	ErrEmptyPool = errors.New("fragment pool is empty")
	// ErrUnknownPool is returned when a template slot refers to a pool that is not configured.
	ErrUnknownPool = errors.New("fragment pool is not configured")
	// ErrEmptyTemplate is returned when a generator has no slots to draw.
	ErrEmptyTemplate = errors.New("fragment template has no slots")
	// ErrDuplicateSlot is returned when two slots share a name.
	ErrDuplicateSlot = errors.New("duplicate slot name")
	// ErrInvalidConfig is returned when a pool file cannot be decoded.
	ErrInvalidConfig = errors.New("invalid fragment config")
)
