package jikan

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/otaku/internal/catalog"
	otakuerrors "github.com/lepinkainen/otaku/internal/errors"
)

// Source is the view of one Jikan catalog used by the search engine. Unlike
// Client it never returns errors: a failed call is logged and yields an empty
// result so the other catalog can still be shown.
type Source struct {
	client *Client
	kind   catalog.Kind
}

// NewSource creates a soft-failing source for one catalog kind.
func NewSource(client *Client, kind catalog.Kind) *Source {
	return &Source{client: client, kind: kind}
}

// Kind returns the catalog this source serves.
func (s *Source) Kind() catalog.Kind {
	return s.kind
}

// Search returns one upstream page, or a zeroed page with Failed set.
func (s *Source) Search(ctx context.Context, filters catalog.Filters, page, limit int) Page {
	result, err := s.client.Search(ctx, s.kind, filters, page, limit)
	if err != nil {
		logFailure(ctx, s.kind, "search", err, "page", page)
		return Page{
			Kind:        s.kind,
			Items:       []catalog.Item{},
			CurrentPage: page,
			LastPage:    1,
			Failed:      true,
		}
	}
	return result
}

// TopList returns the top-ranked entries, or an empty list on failure.
func (s *Source) TopList(ctx context.Context, limit int) []catalog.Item {
	items, err := s.client.TopList(ctx, s.kind, limit)
	if err != nil {
		logFailure(ctx, s.kind, "top", err)
		return []catalog.Item{}
	}
	return items
}

// CurrentSeason returns this season's anime, or an empty list on failure or
// when the source is not the anime catalog.
func (s *Source) CurrentSeason(ctx context.Context, limit int) []catalog.Item {
	if s.kind != catalog.Anime {
		return []catalog.Item{}
	}
	items, err := s.client.CurrentSeason(ctx, limit)
	if err != nil {
		logFailure(ctx, s.kind, "current season", err)
		return []catalog.Item{}
	}
	return items
}

// Season returns the anime of the given season, or an empty list on failure
// or when the source is not the anime catalog.
func (s *Source) Season(ctx context.Context, year int, season Season, limit int) []catalog.Item {
	if s.kind != catalog.Anime {
		return []catalog.Item{}
	}
	items, err := s.client.Season(ctx, year, season, limit)
	if err != nil {
		logFailure(ctx, s.kind, "season", err, "season", season, "year", year)
		return []catalog.Item{}
	}
	return items
}

func logFailure(ctx context.Context, kind catalog.Kind, op string, err error, args ...any) {
	if ctx.Err() != nil {
		slog.Debug("Jikan request abandoned", "kind", kind, "op", op, "error", err)
		return
	}
	args = append([]any{"kind", kind, "op", op, "error", err}, args...)
	switch {
	case otakuerrors.IsRateLimitError(err):
		slog.Warn("Jikan rate limit hit, continuing with empty result", args...)
	case otakuerrors.IsMalformedResponseError(err):
		slog.Warn("Jikan returned an unexpected response, continuing with empty result", args...)
	case otakuerrors.IsTransportError(err):
		slog.Warn("Jikan unreachable or returned an error status, continuing with empty result", args...)
	default:
		slog.Warn("Jikan request failed, continuing with empty result", args...)
	}
}
