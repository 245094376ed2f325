package worklist

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey selects the comparator used by Resort.
type SortKey int

const (
	SortByDate SortKey = iota
	SortByWordCount
	// Deprecated: color ordering compares tags as plain strings, which has no
	// visual meaning. Kept so old ?sort=color links still resolve.
	SortByColor
)

// DefaultKeys lists the keys offered by the timeline UI, in display order.
var DefaultKeys = []SortKey{SortByDate, SortByWordCount}

// String returns the query value for the key.
func (k SortKey) String() string {
	switch k {
	case SortByDate:
		return "date"
	case SortByWordCount:
		return "words"
	case SortByColor:
		return "color"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// Label is the human readable name shown next to the radio control.
func (k SortKey) Label() string {
	switch k {
	case SortByDate:
		return "Newest first"
	case SortByWordCount:
		return "Longest first"
	case SortByColor:
		return "By color"
	default:
		return k.String()
	}
}

// ParseSortKey maps a UI value to a SortKey. Matching is case-insensitive and
// ignores surrounding whitespace.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "":
		return SortByDate, nil
	case "words", "wordcount", "length":
		return SortByWordCount, nil
	case "color", "colour":
		return SortByColor, nil
	}
	return SortByDate, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// CompareDate orders items by their date token.
func CompareDate(a, b Item) int {
	return strings.Compare(a.Date, b.Date)
}

// CompareWordCount orders items by word count.
func CompareWordCount(a, b Item) int {
	return cmp.Compare(a.WordCount, b.WordCount)
}

// CompareColor orders items by color tag.
func CompareColor(a, b Item) int {
	return strings.Compare(a.Color, b.Color)
}

// Comparator returns the ascending comparator for the key.
// Unknown keys fall back to CompareDate.
func Comparator(key SortKey) func(a, b Item) int {
	switch key {
	case SortByWordCount:
		return CompareWordCount
	case SortByColor:
		return CompareColor
	default:
		return CompareDate
	}
}

// Resort returns a copy of items in descending order of key.
// Equal keys keep their relative input order.
func Resort(items []Item, key SortKey) []Item {
	out := slices.Clone(items)
	if len(out) < 2 {
		return out
	}
	asc := Comparator(key)
	slices.SortStableFunc(out, func(a, b Item) int {
		return asc(b, a)
	})
	return out
}
