package federate

import (
	"context"
	"fmt"

	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/jikan"
)

type searchCall struct {
	page  int
	limit int
}

// fakeSource serves a fixed catalog of items split into upstream pages.
type fakeSource struct {
	kind     catalog.Kind
	items    []catalog.Item
	failing  bool
	onSearch func()
	calls    []searchCall
	topCalls int
	seasons  []string
}

func newFakeSource(kind catalog.Kind, count int) *fakeSource {
	items := make([]catalog.Item, count)
	for i := range items {
		item := catalog.NewItem(kind, i+1, fmt.Sprintf("%s %03d", kind, i+1))
		item.Rating = float64((i*7)%100) / 10
		item.Year = 1990 + i%30
		items[i] = item
	}
	return &fakeSource{kind: kind, items: items}
}

func (f *fakeSource) Kind() catalog.Kind { return f.kind }

func (f *fakeSource) Search(_ context.Context, _ catalog.Filters, page, limit int) jikan.Page {
	f.calls = append(f.calls, searchCall{page: page, limit: limit})
	if f.onSearch != nil {
		f.onSearch()
	}
	if f.failing {
		return jikan.Page{Kind: f.kind, Items: []catalog.Item{}, CurrentPage: page, LastPage: 1, Failed: true}
	}

	last := max(1, (len(f.items)+limit-1)/limit)
	start := min((page-1)*limit, len(f.items))
	end := min(start+limit, len(f.items))
	return jikan.Page{
		Kind:        f.kind,
		Items:       append([]catalog.Item(nil), f.items[start:end]...),
		Total:       len(f.items),
		CurrentPage: page,
		LastPage:    last,
	}
}

func (f *fakeSource) TopList(_ context.Context, limit int) []catalog.Item {
	f.topCalls++
	if f.failing {
		return []catalog.Item{}
	}
	return append([]catalog.Item(nil), f.items[:min(limit, len(f.items))]...)
}

func (f *fakeSource) CurrentSeason(_ context.Context, limit int) []catalog.Item {
	f.seasons = append(f.seasons, "now")
	return append([]catalog.Item(nil), f.items[:min(limit, len(f.items))]...)
}

func (f *fakeSource) Season(_ context.Context, year int, season jikan.Season, limit int) []catalog.Item {
	f.seasons = append(f.seasons, fmt.Sprintf("%s-%d", season, year))
	return append([]catalog.Item(nil), f.items[:min(limit, len(f.items))]...)
}

func pagesRequested(calls []searchCall) []int {
	pages := make([]int, len(calls))
	for i, c := range calls {
		pages[i] = c.page
	}
	return pages
}
