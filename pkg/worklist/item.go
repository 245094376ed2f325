package worklist

// Item is a single bibliography entry. Items are built once when the catalog
// is loaded and never mutated afterwards.
type Item struct {
	Slug      string
	Title     string
	Kind      string
	Venue     string
	Date      string // sortable date token, e.g. "2020-09-10"
	WordCount int
	Color     string // hex-like tag, e.g. "#a3f21b"
	BlurbHTML string
}
