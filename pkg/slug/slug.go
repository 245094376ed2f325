// Package slug turns titles into URL-safe identifiers.
//
// Diacritics are folded to their base letters using Unicode decomposition
// ("Lǐ Mùbái" becomes "li-mubai"); any other run of non-alphanumeric
// characters collapses into a single separator.
//
//	slug.Make("The Crane of the Northern Peaks") // "the-crane-of-the-northern-peaks"
//	slug.Make("Wǔxiá & Xiānxiá", slug.Replace(map[string]string{"&": "and"}))
//	// "wuxia-and-xianxia"
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures slug generation.
type Option func(*config)

type config struct {
	maxLength int
	separator string
	replace   map[string]string
}

func defaultConfig() *config {
	return &config{separator: "-"}
}

// MaxLength truncates the slug to at most n runes, never ending on a separator.
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// Separator sets the separator placed between words. Default is "-".
func Separator(s string) Option {
	return func(c *config) { c.separator = s }
}

// Replace applies literal replacements before slugification, e.g. {"&": "and"}.
func Replace(pairs map[string]string) Option {
	return func(c *config) { c.replace = pairs }
}

// fold strips combining marks after canonical decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Make creates a lower-case slug from s.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	for old, repl := range cfg.replace {
		s = strings.ReplaceAll(s, old, " "+repl+" ")
	}
	s = fold(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	count := 0
	sepLen := len([]rune(cfg.separator))

	for _, r := range s {
		r = unicode.ToLower(r)
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			pendingSep = b.Len() > 0
			continue
		}
		extra := 1
		if pendingSep {
			extra += sepLen
		}
		if cfg.maxLength > 0 && count+extra > cfg.maxLength {
			break
		}
		if pendingSep {
			b.WriteString(cfg.separator)
			pendingSep = false
		}
		b.WriteRune(r)
		count += extra
	}

	return b.String()
}
