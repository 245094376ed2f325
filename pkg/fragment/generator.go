package fragment

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Option configures a Generator.
type Option func(*options)

type options struct {
	seed    *uint64
	formats map[string]func(string) string
}

// WithSeed makes the generator deterministic: two generators built from the
// same template, pools and seed produce the same sequence of results.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithFormatter registers a function applied to every entry drawn from pool.
func WithFormatter(pool string, fn func(string) string) Option {
	return func(o *options) {
		if fn == nil {
			return
		}
		if o.formats == nil {
			o.formats = make(map[string]func(string) string)
		}
		o.formats[pool] = fn
	}
}

// Generator draws entries from pools according to a template.
// It is safe for concurrent use.
type Generator struct {
	template Template
	pools    map[string]Pool
	formats  map[string]func(string) string

	mu  sync.Mutex
	rng *rand.Rand
}

// New validates the template against the pools and returns a Generator.
// Pools not referenced by the template are ignored.
func New(tpl Template, pools map[string]Pool, opts ...Option) (*Generator, error) {
	if len(tpl) == 0 {
		return nil, ErrEmptyTemplate
	}

	seen := make(map[string]struct{}, len(tpl))
	used := make(map[string]Pool, len(tpl))
	for _, slot := range tpl {
		key := slot.key()
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlot, key)
		}
		seen[key] = struct{}{}

		pool, ok := pools[slot.Pool]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPool, slot.Pool)
		}
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyPool, slot.Pool)
		}
		used[slot.Pool] = append(Pool(nil), pool...)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return &Generator{
		template: append(Template(nil), tpl...),
		pools:    used,
		formats:  o.formats,
		rng:      newRand(o.seed),
	}, nil
}

// MustNew is like New but panics on configuration errors.
// Intended for built-in pools that are known to be valid.
func MustNew(tpl Template, pools map[string]Pool, opts ...Option) *Generator {
	g, err := New(tpl, pools, opts...)
	if err != nil {
		panic(fmt.Sprintf("fragment: %v", err))
	}
	return g
}

func newRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	}
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Falls back to the runtime-seeded global source.
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}

// Template returns a copy of the generator's template.
func (g *Generator) Template() Template {
	return append(Template(nil), g.template...)
}

// Pool returns a copy of the named pool, or nil if the template does not use it.
func (g *Generator) Pool(name string) Pool {
	p, ok := g.pools[name]
	if !ok {
		return nil
	}
	return append(Pool(nil), p...)
}

// Generate draws one entry for every required slot and every optional slot
// enabled in opts.Include.
func (g *Generator) Generate(opts GenerateOptions) Result {
	parts := make([]Part, 0, len(g.template))

	g.mu.Lock()
	for _, slot := range g.template {
		if slot.Optional && !opts.Include[slot.key()] {
			continue
		}
		pool := g.pools[slot.Pool]
		parts = append(parts, Part{
			Slot:   slot.key(),
			Pool:   slot.Pool,
			Value:  pool[g.rng.IntN(len(pool))],
			Prefix: slot.Prefix,
			Suffix: slot.Suffix,
		})
	}
	if opts.Shuffle {
		parts = Shuffle(g.rng, parts)
	}
	g.mu.Unlock()

	for i := range parts {
		if fn, ok := g.formats[parts[i].Pool]; ok {
			parts[i].Value = fn(parts[i].Value)
		}
	}

	return Result{Text: join(parts), Parts: parts}
}

// ShuffleStrings permutes seq with the generator's own source, so seeded
// generators shuffle reproducibly.
func (g *Generator) ShuffleStrings(seq []string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Shuffle(g.rng, seq)
}
