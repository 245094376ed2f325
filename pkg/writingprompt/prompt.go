// Package writingprompt builds short story prompts from a character, a
// conflict, a setting and an optional twist.
//
// Each slot renders as a labelled sentence, so Options.Shuffle can present the
// clauses in random order without breaking grammar.
package writingprompt

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/folio/pkg/fragment"
)

//go:embed pools.yaml
var builtinPools []byte

// Slot names in the built-in template.
const (
	SlotSubject  = "subject"
	SlotConflict = "conflict"
	SlotSetting  = "setting"
	SlotTwist    = "twist"
)

// ErrInvalidPools is returned when a custom pool file cannot be used.
var ErrInvalidPools = errors.New("invalid prompt pools")

// Options configures a single prompt.
type Options struct {
	// Twist includes the optional twist sentence.
	Twist bool
	// Shuffle presents the sentences in random order.
	Shuffle bool
}

// Generator produces writing prompts.
type Generator struct {
	gen *fragment.Generator
}

// DefaultConfig returns the built-in template and pools.
func DefaultConfig() fragment.Config {
	cfg, err := fragment.Decode(bytes.NewReader(builtinPools))
	if err != nil {
		panic(fmt.Sprintf("writingprompt: built-in pools: %v", err))
	}
	return cfg
}

// New returns a generator over the built-in pools.
func New(opts ...fragment.Option) (*Generator, error) {
	return NewFromConfig(DefaultConfig(), opts...)
}

// NewFromConfig returns a generator over cfg. Entries are sentence-cased.
func NewFromConfig(cfg fragment.Config, opts ...fragment.Option) (*Generator, error) {
	opts = append([]fragment.Option{
		fragment.WithFormatter(SlotSubject, sentenceCase),
		fragment.WithFormatter(SlotConflict, sentenceCase),
		fragment.WithFormatter(SlotSetting, sentenceCase),
		fragment.WithFormatter(SlotTwist, sentenceCase),
	}, opts...)
	g, err := fragment.NewFromConfig(cfg, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidPools, err)
	}
	return &Generator{gen: g}, nil
}

// LoadPools reads a YAML pool file and merges it into the built-in pools.
func LoadPools(r io.Reader) (fragment.Config, error) {
	extra, err := fragment.Decode(r)
	if err != nil {
		return fragment.Config{}, errors.Join(ErrInvalidPools, err)
	}
	return fragment.Merge(DefaultConfig(), extra), nil
}

// Generate returns a new prompt.
func (g *Generator) Generate(opts Options) fragment.Result {
	res := g.gen.Generate(fragment.GenerateOptions{
		Include: map[string]bool{SlotTwist: opts.Twist},
		Shuffle: opts.Shuffle,
	})
	// Every prefix starts with a space so shuffled sentences stay separated.
	res.Text = strings.TrimSpace(res.Text)
	return res
}

func sentenceCase(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var defaultGenerator = sync.OnceValue(func() *Generator {
	g, err := New()
	if err != nil {
		panic(fmt.Sprintf("writingprompt: %v", err))
	}
	return g
})

// Generate returns a prompt from the built-in pools using a shared generator.
func Generate(opts Options) string {
	return defaultGenerator().Generate(opts).Text
}
