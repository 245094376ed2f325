package worklist

// Visibility tells a renderer which auxiliary labels to draw for each item.
type Visibility struct {
	Date      bool
	WordCount bool
	Color     bool
}

// Fields returns the label visibility for the active sort key.
// The date is always shown; word counts and color swatches only appear while
// they are the ordering key.
func Fields(key SortKey) Visibility {
	return Visibility{
		Date:      true,
		WordCount: key == SortByWordCount,
		Color:     key == SortByColor,
	}
}
