package worklist_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/worklist"
)

func dates(items []worklist.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Date
	}
	return out
}

func counts(items []worklist.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.WordCount
	}
	return out
}

func slugs(items []worklist.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Slug
	}
	return out
}

func sample() []worklist.Item {
	return []worklist.Item{
		{Slug: "tea-house", Date: "2019-01-01", WordCount: 170, Color: "#aa3300"},
		{Slug: "river-sect", Date: "2020-09-10", WordCount: 1200, Color: "#0033aa"},
		{Slug: "iron-fan", Date: "2018-06-19", WordCount: 90, Color: "#ffcc00"},
	}
}

func TestResort(t *testing.T) {
	t.Parallel()

	t.Run("word count descending", func(t *testing.T) {
		t.Parallel()
		got := worklist.Resort(sample(), worklist.SortByWordCount)
		assert.Equal(t, []int{1200, 170, 90}, counts(got))
	})

	t.Run("date descending", func(t *testing.T) {
		t.Parallel()
		got := worklist.Resort(sample(), worklist.SortByDate)
		assert.Equal(t, []string{"2020-09-10", "2019-01-01", "2018-06-19"}, dates(got))
	})

	t.Run("color descending", func(t *testing.T) {
		t.Parallel()
		got := worklist.Resort(sample(), worklist.SortByColor)
		assert.Equal(t, []string{"iron-fan", "tea-house", "river-sect"}, slugs(got))
	})

	t.Run("does not modify input", func(t *testing.T) {
		t.Parallel()
		in := sample()
		_ = worklist.Resort(in, worklist.SortByWordCount)
		assert.Equal(t, sample(), in)
	})

	t.Run("empty and nil input", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, worklist.Resort(nil, worklist.SortByDate))
		assert.Empty(t, worklist.Resort([]worklist.Item{}, worklist.SortByWordCount))
	})

	t.Run("single item", func(t *testing.T) {
		t.Parallel()
		in := sample()[:1]
		assert.Equal(t, in, worklist.Resort(in, worklist.SortByDate))
	})
}

func TestResortStable(t *testing.T) {
	t.Parallel()

	in := []worklist.Item{
		{Slug: "a", Date: "2020-01-01", WordCount: 500},
		{Slug: "b", Date: "2021-01-01", WordCount: 500},
		{Slug: "c", Date: "2019-01-01", WordCount: 900},
		{Slug: "d", Date: "2022-01-01", WordCount: 500},
	}

	got := worklist.Resort(in, worklist.SortByWordCount)
	assert.Equal(t, []string{"c", "a", "b", "d"}, slugs(got), "equal counts keep input order")
}

func TestResortIdempotent(t *testing.T) {
	t.Parallel()

	for _, key := range []worklist.SortKey{worklist.SortByDate, worklist.SortByWordCount, worklist.SortByColor} {
		once := worklist.Resort(sample(), key)
		twice := worklist.Resort(once, key)
		assert.Equal(t, once, twice, "key %s", key)
	}
}

func TestResortPreservesSet(t *testing.T) {
	t.Parallel()

	keys := []worklist.SortKey{worklist.SortByDate, worklist.SortByWordCount, worklist.SortByColor}
	current := sample()
	for _, first := range keys {
		for _, second := range keys {
			current = worklist.Resort(worklist.Resort(current, first), second)
			assert.ElementsMatch(t, sample(), current, "%s then %s", first, second)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want worklist.SortKey
	}{
		{"date", worklist.SortByDate},
		{"", worklist.SortByDate},
		{" Words ", worklist.SortByWordCount},
		{"wordcount", worklist.SortByWordCount},
		{"length", worklist.SortByWordCount},
		{"color", worklist.SortByColor},
		{"COLOUR", worklist.SortByColor},
	}
	for _, tt := range tests {
		got, err := worklist.ParseSortKey(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := worklist.ParseSortKey("rating")
	require.Error(t, err)
	assert.True(t, errors.Is(err, worklist.ErrUnknownSortKey))
}

func TestSortKeyStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, key := range []worklist.SortKey{worklist.SortByDate, worklist.SortByWordCount, worklist.SortByColor} {
		got, err := worklist.ParseSortKey(key.String())
		require.NoError(t, err)
		assert.Equal(t, key, got)
		assert.NotEmpty(t, key.Label())
	}
	assert.Equal(t, "SortKey(42)", worklist.SortKey(42).String())
}

func TestFields(t *testing.T) {
	t.Parallel()

	assert.Equal(t, worklist.Visibility{Date: true}, worklist.Fields(worklist.SortByDate))
	assert.Equal(t, worklist.Visibility{Date: true, WordCount: true}, worklist.Fields(worklist.SortByWordCount))
	assert.Equal(t, worklist.Visibility{Date: true, Color: true}, worklist.Fields(worklist.SortByColor))
}

func TestComparators(t *testing.T) {
	t.Parallel()

	a := worklist.Item{Date: "2019-01-01", WordCount: 10, Color: "#000001"}
	b := worklist.Item{Date: "2020-01-01", WordCount: 9, Color: "#000000"}

	assert.Negative(t, worklist.CompareDate(a, b))
	assert.Positive(t, worklist.CompareWordCount(a, b))
	assert.Positive(t, worklist.CompareColor(a, b))
	assert.Zero(t, worklist.CompareDate(a, a))
}
