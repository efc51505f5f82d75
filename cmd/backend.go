package cmd

import (
	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/config"
	"github.com/lepinkainen/otaku/internal/federate"
	"github.com/lepinkainen/otaku/internal/jikan"
	"github.com/lepinkainen/otaku/internal/ratelimit"
)

// newCoordinator wires the anime and manga sources to one Jikan client so
// every upstream call shares the same limiter.
var newCoordinator = func() *federate.Coordinator {
	client := jikan.NewClient(
		jikan.WithBaseURL(config.JikanBaseURL),
		jikan.WithTimeout(config.JikanTimeout),
		jikan.WithRateLimiter(ratelimit.NewInterval("Jikan", config.JikanDelay)),
	)

	sources := make([]federate.Source, 0, len(catalog.Kinds))
	for _, kind := range catalog.Kinds {
		sources = append(sources, jikan.NewSource(client, kind))
	}

	return federate.New(sources,
		federate.WithPageSize(config.PageSize),
		federate.WithCuratedLimit(config.CuratedLimit),
	)
}
