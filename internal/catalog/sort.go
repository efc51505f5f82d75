package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortItems orders items in place by the given key. The sort is stable so
// equal keys keep their merge order, which keeps repeated searches identical.
func SortItems(items []Item, key Sort) {
	// collate.Collator is not safe for concurrent use; build one per call.
	coll := collate.New(language.English)

	var less func(a, b Item) int
	switch key.OrDefault() {
	case SortRatingAsc:
		less = func(a, b Item) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortTitleAsc:
		less = func(a, b Item) int { return coll.CompareString(a.Title, b.Title) }
	case SortTitleDesc:
		less = func(a, b Item) int { return coll.CompareString(b.Title, a.Title) }
	case SortYearDesc:
		less = func(a, b Item) int { return cmp.Compare(b.Year, a.Year) }
	case SortYearAsc:
		less = func(a, b Item) int { return cmp.Compare(a.Year, b.Year) }
	default:
		less = func(a, b Item) int { return cmp.Compare(b.Rating, a.Rating) }
	}

	slices.SortStableFunc(items, less)
}
