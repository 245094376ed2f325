package randomname

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/folio/pkg/fragment"
)

//go:embed pools.yaml
var builtinPools []byte

// ErrInvalidPools is returned when a custom pool file cannot be used.
var ErrInvalidPools = errors.New("invalid name pools")

// Generator produces names from a fixed set of pools.
type Generator struct {
	gen *fragment.Generator
}

// DefaultConfig returns the built-in template and pools.
func DefaultConfig() fragment.Config {
	cfg, err := fragment.Decode(bytes.NewReader(builtinPools))
	if err != nil {
		panic(fmt.Sprintf("randomname: built-in pools: %v", err))
	}
	return cfg
}

// New returns a generator over the built-in pools.
func New(opts ...fragment.Option) (*Generator, error) {
	return NewFromConfig(DefaultConfig(), opts...)
}

// NewFromConfig returns a generator over cfg.
func NewFromConfig(cfg fragment.Config, opts ...fragment.Option) (*Generator, error) {
	g, err := fragment.NewFromConfig(cfg, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidPools, err)
	}
	return &Generator{gen: g}, nil
}

// LoadPools reads a YAML pool file, normalizes its entries and merges them
// into the built-in pools.
func LoadPools(r io.Reader) (fragment.Config, error) {
	extra, err := fragment.Decode(r)
	if err != nil {
		return fragment.Config{}, errors.Join(ErrInvalidPools, err)
	}
	normalize(extra.Pools)
	return fragment.Merge(DefaultConfig(), extra), nil
}

// Generate returns a new name.
func (g *Generator) Generate(opts Options) fragment.Result {
	return g.gen.Generate(fragment.GenerateOptions{Include: opts.include()})
}

func normalize(pools map[string]fragment.Pool) {
	// Casers are stateful; one per call.
	titleCaser := cases.Title(language.Und)
	for name, entries := range pools {
		for i, e := range entries {
			e = strings.TrimSpace(e)
			switch name {
			case SlotSurname, SlotGiven:
				e = titleCaser.String(e)
			case SlotMiddle:
				e = strings.ToLower(e)
			}
			entries[i] = e
		}
	}
}

var defaultGenerator = sync.OnceValue(func() *Generator {
	g, err := New()
	if err != nil {
		panic(fmt.Sprintf("randomname: %v", err))
	}
	return g
})

// Generate returns a name from the built-in pools using a shared generator.
func Generate(opts Options) string {
	return defaultGenerator().Generate(opts).Text
}
