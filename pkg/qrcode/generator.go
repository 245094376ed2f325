// Package qrcode renders share links as PNG QR codes.
package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when content is empty or only whitespace.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrGenerate wraps encoder failures, such as content too long for a QR code.
	ErrGenerate = errors.New("failed to generate QR code")
)

const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 1024
)

type options struct {
	size     int
	recovery skipqrcode.RecoveryLevel
}

// Option configures Generate.
type Option func(*options)

// WithSize sets the image edge in pixels, clamped to [MinSize, MaxSize].
// Non-positive values keep DefaultSize.
func WithSize(px int) Option {
	return func(o *options) {
		switch {
		case px <= 0:
		case px < MinSize:
			o.size = MinSize
		case px > MaxSize:
			o.size = MaxSize
		default:
			o.size = px
		}
	}
}

// WithHighRecovery uses the highest error correction level, useful for
// codes printed small or on textured paper.
func WithHighRecovery() Option {
	return func(o *options) { o.recovery = skipqrcode.Highest }
}

// Generate encodes content as a square PNG.
func Generate(content string, opts ...Option) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	o := options{size: DefaultSize, recovery: skipqrcode.Medium}
	for _, opt := range opts {
		opt(&o)
	}
	png, err := skipqrcode.Encode(content, o.recovery, o.size)
	if err != nil {
		return nil, errors.Join(ErrGenerate, err)
	}
	return png, nil
}

// DataURI encodes content as a PNG data URI for inline <img> tags.
func DataURI(content string, opts ...Option) (string, error) {
	png, err := Generate(content, opts...)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
