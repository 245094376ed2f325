package visual

import "errors"

var (
	ErrLaunchBrowser  = errors.New("failed to launch browser")
	ErrCapture        = errors.New("failed to capture page")
	ErrDecode         = errors.New("failed to decode screenshot")
	ErrNoRoutes       = errors.New("no routes to capture")
	ErrInvalidBaseURL = errors.New("invalid base url")
)
