package sitecheck

import "errors"

var (
	// ErrNoDocuments is returned when the directory holds no .html files.
	ErrNoDocuments = errors.New("no html documents found")
	// ErrParse wraps a document that could not be read or parsed.
	ErrParse = errors.New("failed to parse html document")
)
