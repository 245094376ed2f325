// Package baseline keeps the reference screenshots used by visual regression.
//
// A Store maps slash-separated keys such as "works/mobile.png" to PNG bytes.
// LocalStore keeps them in a directory, usually committed next to the code;
// S3Store keeps them in a bucket so CI runners share one set. Open picks the
// backend from Config.
package baseline

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Store reads and writes baseline images.
type Store interface {
	// Get returns the stored bytes or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	// List returns every key under prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Config selects and configures a Store. A non-empty Bucket selects S3.
type Config struct {
	Dir            string `env:"BASELINE_DIR" envDefault:"testdata/visual"`
	Bucket         string `env:"BASELINE_S3_BUCKET"`
	Prefix         string `env:"BASELINE_S3_PREFIX" envDefault:"baselines"`
	Region         string `env:"BASELINE_S3_REGION" envDefault:"us-east-1"`
	Endpoint       string `env:"BASELINE_S3_ENDPOINT"`
	AccessKeyID    string `env:"BASELINE_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"BASELINE_S3_SECRET_ACCESS_KEY"`
	ForcePathStyle bool   `env:"BASELINE_S3_FORCE_PATH_STYLE"`
}

// Open returns the Store described by cfg.
func Open(ctx context.Context, cfg Config, opts ...S3Option) (Store, error) {
	if cfg.Bucket != "" {
		return NewS3Store(ctx, S3Config{
			Bucket:         cfg.Bucket,
			Prefix:         cfg.Prefix,
			Region:         cfg.Region,
			Endpoint:       cfg.Endpoint,
			AccessKeyID:    cfg.AccessKeyID,
			SecretKey:      cfg.SecretKey,
			ForcePathStyle: cfg.ForcePathStyle,
		}, opts...)
	}
	return NewLocalStore(cfg.Dir)
}

// Key builds the snapshot key for a route and viewport: "/" maps to
// "index/<viewport>.png" and "/works" to "works/<viewport>.png".
func Key(route, viewport string) string {
	name := strings.Trim(route, "/")
	if name == "" {
		name = "index"
	}
	return path.Join(name, viewport+".png")
}

// cleanKey rejects keys that are empty, absolute or escape the store root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	clean := path.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return clean, nil
}
