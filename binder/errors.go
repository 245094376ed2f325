package binder

import "errors"

var (
	ErrInvalidQuery = errors.New("invalid query parameter")
	ErrInvalidPath  = errors.New("invalid path parameter")
	// ErrBinderNotApplicable tells handler.Wrap to skip a binder for this request.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
