package baseline

import "errors"

var (
	ErrNotFound          = errors.New("baseline not found")
	ErrInvalidKey        = errors.New("invalid baseline key")
	ErrInvalidConfig     = errors.New("invalid baseline store configuration")
	ErrLoadAWSConfig     = errors.New("failed to load aws configuration")
	ErrBucketNotFound    = errors.New("baseline bucket not found")
	ErrAccessDenied      = errors.New("baseline store access denied")
	ErrStoreUnavailable  = errors.New("baseline store unavailable")
	ErrOperationCanceled = errors.New("baseline store operation canceled")
	ErrOperationTimeout  = errors.New("baseline store operation timed out")
)
