package content

import "errors"

var (
	ErrReadCatalog    = errors.New("failed to read catalog")
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrRenderMarkdown = errors.New("failed to render markdown")
)
