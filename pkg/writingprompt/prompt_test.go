package writingprompt_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/fragment"
	"github.com/dmitrymomot/folio/pkg/writingprompt"
)

func TestGenerateOrder(t *testing.T) {
	t.Parallel()

	gen, err := writingprompt.New(fragment.WithSeed(8))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		res := gen.Generate(writingprompt.Options{})
		require.Len(t, res.Parts, 3)
		assert.Equal(t, writingprompt.SlotSubject, res.Parts[0].Slot)
		assert.Equal(t, writingprompt.SlotConflict, res.Parts[1].Slot)
		assert.Equal(t, writingprompt.SlotSetting, res.Parts[2].Slot)
		assert.True(t, strings.HasPrefix(res.Text, "Character: "))
		assert.NotContains(t, res.Text, "Twist:")
	}
}

func TestGenerateTwist(t *testing.T) {
	t.Parallel()

	gen, err := writingprompt.New()
	require.NoError(t, err)

	res := gen.Generate(writingprompt.Options{Twist: true})
	require.Len(t, res.Parts, 4)
	assert.Contains(t, res.Text, " Twist: ")
	assert.True(t, strings.HasSuffix(res.Text, "."))
}

func TestGenerateShuffle(t *testing.T) {
	t.Parallel()

	gen, err := writingprompt.New(fragment.WithSeed(21))
	require.NoError(t, err)

	firstSlots := make(map[string]bool)
	for i := 0; i < 200; i++ {
		res := gen.Generate(writingprompt.Options{Twist: true, Shuffle: true})
		require.Len(t, res.Parts, 4)
		assert.Equal(t, strings.TrimSpace(res.Text), res.Text)
		for _, label := range []string{"Character:", "Conflict:", "Setting:", "Twist:"} {
			assert.Equal(t, 1, strings.Count(res.Text, label))
		}
		firstSlots[res.Parts[0].Slot] = true
	}
	assert.Len(t, firstSlots, 4, "every slot should lead at least once")
}

func TestSentenceCase(t *testing.T) {
	t.Parallel()

	gen, err := writingprompt.New()
	require.NoError(t, err)

	for _, part := range gen.Generate(writingprompt.Options{Twist: true}).Parts {
		first := part.Value[:1]
		assert.Equal(t, strings.ToUpper(first), first, part.Value)
	}
}

func TestLoadPools(t *testing.T) {
	t.Parallel()

	cfg, err := writingprompt.LoadPools(strings.NewReader(`
pools:
  setting: ["a lighthouse run by cats"]
`))
	require.NoError(t, err)
	assert.Contains(t, cfg.Pools[writingprompt.SlotSetting], "a lighthouse run by cats")

	_, err = writingprompt.LoadPools(strings.NewReader("template: 3"))
	assert.True(t, errors.Is(err, writingprompt.ErrInvalidPools))
}

func TestPackageGenerate(t *testing.T) {
	t.Parallel()
	assert.NotEmpty(t, writingprompt.Generate(writingprompt.Options{Shuffle: true}))
}
