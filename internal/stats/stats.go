// Package stats computes the summary numbers shown above a result view.
package stats

import "github.com/lepinkainen/otaku/internal/catalog"

// Stats summarises a sequence of items.
type Stats struct {
	Count         int                  `json:"count" yaml:"count"`
	ByKind        map[catalog.Kind]int `json:"by_kind" yaml:"by_kind"`
	AverageRating float64              `json:"average_rating" yaml:"average_rating"`
}

// Compute counts items per kind and averages their ratings. Unrated items
// count as zero. An empty sequence has an average of 0.
func Compute(items []catalog.Item) Stats {
	s := Stats{
		Count:  len(items),
		ByKind: make(map[catalog.Kind]int, len(catalog.Kinds)),
	}
	for _, kind := range catalog.Kinds {
		s.ByKind[kind] = 0
	}
	if len(items) == 0 {
		return s
	}

	var sum float64
	for _, item := range items {
		s.ByKind[item.Kind]++
		sum += item.Rating
	}
	s.AverageRating = sum / float64(len(items))
	return s
}

// PageStats is the search-view summary: upstream match totals alongside the
// statistics of the items actually on the page.
type PageStats struct {
	GrandTotal int                  `json:"grand_total" yaml:"grand_total"`
	Totals     map[catalog.Kind]int `json:"totals" yaml:"totals"`
	Page       Stats                `json:"page" yaml:"page"`
}

// ForPage summarises one virtual page.
func ForPage(page catalog.VirtualPage) PageStats {
	totals := make(map[catalog.Kind]int, len(catalog.Kinds))
	for _, kind := range catalog.Kinds {
		totals[kind] = page.Totals[kind]
	}
	return PageStats{
		GrandTotal: page.GrandTotal,
		Totals:     totals,
		Page:       Compute(page.Items),
	}
}
