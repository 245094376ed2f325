// Package worklist orders bibliography entries for the works timeline.
//
// A work Item carries three sortable keys: a lexicographically ordered date
// token ("2020-09-10"), an integer word count, and a hex-like color tag. Resort
// returns the items in descending order of the selected SortKey without
// touching the input slice. Ties keep their input order.
//
// Comparison and display are kept apart: the Compare* functions are pure and
// independently testable, while Fields reports which auxiliary labels a
// renderer should show for the active key.
//
// # Usage
//
//	key, err := worklist.ParseSortKey(r.URL.Query().Get("sort"))
//	if err != nil {
//		key = worklist.SortByDate
//	}
//	sorted := worklist.Resort(site.Works, key)
//	vis := worklist.Fields(key)
//
// # Legacy keys
//
// SortByColor orders by the color tag using plain string comparison. It is kept
// for old permalinks only and is not offered by DefaultKeys.
package worklist
