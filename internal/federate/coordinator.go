// Package federate merges the anime and manga catalogs into one paginated,
// deduplicated and sorted result set.
package federate

import (
	"context"
	"log/slog"
	"time"

	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/jikan"
)

const defaultCuratedLimit = 10

// Source is one upstream catalog. Implementations fail soft: errors are
// reported through jikan.Page.Failed and empty results, never returned.
type Source interface {
	Kind() catalog.Kind
	Search(ctx context.Context, filters catalog.Filters, page, limit int) jikan.Page
	TopList(ctx context.Context, limit int) []catalog.Item
}

// SeasonalSource is implemented by the anime source to feed the curated
// "trending" and "seasonal" sections.
type SeasonalSource interface {
	CurrentSeason(ctx context.Context, limit int) []catalog.Item
	Season(ctx context.Context, year int, season jikan.Season, limit int) []catalog.Item
}

// Request is one application-level search.
type Request struct {
	Filters catalog.Filters `json:"filters" yaml:"filters"`
	Scope   catalog.Scope   `json:"scope" yaml:"scope"`
	Page    int             `json:"page" yaml:"page"`
}

// Coordinator turns application page requests into sequential upstream
// calls. It holds no per-request state and may be reused.
type Coordinator struct {
	sources      map[catalog.Kind]Source
	pageSize     int
	curatedLimit int
	now          func() time.Time
}

// Option is a functional option for configuring the Coordinator.
type Option func(*Coordinator)

// WithPageSize sets the application page size. Values below one upstream
// page per source are ignored.
func WithPageSize(size int) Option {
	return func(c *Coordinator) {
		if size >= catalog.PagesPerAppPage*len(catalog.Kinds) {
			c.pageSize = size
		}
	}
}

// WithCuratedLimit sets how many items each curated section fetches.
func WithCuratedLimit(limit int) Option {
	return func(c *Coordinator) {
		if limit > 0 {
			c.curatedLimit = limit
		}
	}
}

// WithClock sets the time source used to pick the current anime season.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Coordinator over the given sources, at most one per kind.
func New(sources []Source, opts ...Option) *Coordinator {
	c := &Coordinator{
		sources:      make(map[catalog.Kind]Source, len(sources)),
		pageSize:     catalog.AppPageSize,
		curatedLimit: defaultCuratedLimit,
		now:          time.Now,
	}
	for _, s := range sources {
		c.sources[s.Kind()] = s
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PageSize returns the application page size.
func (c *Coordinator) PageSize() int {
	return c.pageSize
}

// upstreamLimit splits the application page between the sources in scope so
// that a full page never exceeds pageSize items.
func (c *Coordinator) upstreamLimit(sources int) int {
	if sources < 1 {
		sources = 1
	}
	limit := c.pageSize / (catalog.PagesPerAppPage * sources)
	return max(1, min(limit, catalog.UpstreamMaxLimit))
}

// Search builds one application page. Upstream calls are made one after the
// other; the only error returned is the context's, when the request was
// cancelled or superseded before it finished.
//
// Each source's share of the page shrinks with the number of sources in
// scope, so LastPage for a search over both catalogs is about twice that of
// a single-catalog search.
func (c *Coordinator) Search(ctx context.Context, req Request) (catalog.VirtualPage, error) {
	appPage := max(1, req.Page)
	firstPage, secondPage := catalog.UpstreamPages(appPage)

	var kinds []catalog.Kind
	for _, kind := range req.Scope.Kinds() {
		if _, ok := c.sources[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	limit := c.upstreamLimit(len(kinds))

	result := catalog.VirtualPage{
		CurrentPage: appPage,
		Totals:      make(map[catalog.Kind]int, len(catalog.Kinds)),
	}
	for _, kind := range catalog.Kinds {
		result.Totals[kind] = 0
	}

	var merged []catalog.Item
	lastUpstream := 1

	for _, kind := range kinds {
		source := c.sources[kind]

		first := source.Search(ctx, req.Filters, firstPage, limit)
		if err := ctx.Err(); err != nil {
			return catalog.VirtualPage{}, err
		}
		merged = append(merged, first.Items...)
		failed := first.Failed

		if secondPage <= first.LastPage {
			second := source.Search(ctx, req.Filters, secondPage, limit)
			if err := ctx.Err(); err != nil {
				return catalog.VirtualPage{}, err
			}
			merged = append(merged, second.Items...)
			failed = failed || second.Failed
		}

		if failed {
			result.Unavailable = append(result.Unavailable, kind)
		}
		result.Totals[kind] = first.Total
		result.GrandTotal += first.Total
		lastUpstream = max(lastUpstream, first.LastPage)
	}

	items := catalog.Dedupe(merged)
	catalog.SortItems(items, req.Filters.Sort)
	if len(items) > c.pageSize {
		slog.Debug("Upstream returned more items than requested, truncating", "items", len(items), "page_size", c.pageSize)
		items = items[:c.pageSize]
	}

	result.Items = items
	result.LastPage = catalog.AppLastPage(lastUpstream)

	slog.Debug("Search page assembled",
		"page", appPage,
		"scope", req.Scope,
		"items", len(items),
		"grand_total", result.GrandTotal,
		"last_page", result.LastPage,
	)

	return result, nil
}
