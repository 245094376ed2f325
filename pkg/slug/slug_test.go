package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		opts []slug.Option
		want string
	}{
		{name: "simple", in: "Hello World", want: "hello-world"},
		{name: "punctuation collapses", in: "  The Iron Fan!!  (revised) ", want: "the-iron-fan-revised"},
		{name: "pinyin tones folded", in: "Lǐ Mùbái", want: "li-mubai"},
		{name: "latin diacritics", in: "Crème brûlée", want: "creme-brulee"},
		{name: "digits kept", in: "Chapter 12: Return", want: "chapter-12-return"},
		{name: "non-latin dropped", in: "俠 Xia", want: "xia"},
		{name: "empty", in: "", want: ""},
		{name: "only symbols", in: "***", want: ""},
		{name: "custom separator", in: "Red Lantern Thief", opts: []slug.Option{slug.Separator("_")}, want: "red_lantern_thief"},
		{name: "replacement", in: "Wǔxiá&Xiānxiá", opts: []slug.Option{slug.Replace(map[string]string{"&": "and"})}, want: "wuxia-and-xianxia"},
		{name: "max length no trailing separator", in: "alpha beta gamma", opts: []slug.Option{slug.MaxLength(6)}, want: "alpha"},
		{name: "max length mid word", in: "alphabet soup", opts: []slug.Option{slug.MaxLength(4)}, want: "alph"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.in, tt.opts...))
		})
	}
}
