package federate

import (
	"context"

	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/jikan"
)

// Curated holds the four sections shown when no search is active.
type Curated struct {
	TopAnime    []catalog.Item `json:"top_anime" yaml:"top_anime"`
	Trending    []catalog.Item `json:"trending" yaml:"trending"`
	Seasonal    []catalog.Item `json:"seasonal" yaml:"seasonal"`
	SeasonLabel string         `json:"season_label" yaml:"season_label"`
	TopManga    []catalog.Item `json:"top_manga" yaml:"top_manga"`
}

// All returns every curated item once, in section order.
func (c Curated) All() []catalog.Item {
	all := make([]catalog.Item, 0, len(c.TopAnime)+len(c.Trending)+len(c.Seasonal)+len(c.TopManga))
	all = append(all, c.TopAnime...)
	all = append(all, c.Trending...)
	all = append(all, c.Seasonal...)
	all = append(all, c.TopManga...)
	return catalog.Dedupe(all)
}

// Curated fetches top anime, this season's anime (twice: the live "now"
// listing and the calendar season), and top manga. Sections whose source is
// missing or failing come back empty.
func (c *Coordinator) Curated(ctx context.Context) (Curated, error) {
	year, season := jikan.SeasonOf(c.now())
	result := Curated{
		TopAnime:    []catalog.Item{},
		Trending:    []catalog.Item{},
		Seasonal:    []catalog.Item{},
		SeasonLabel: jikan.SeasonLabel(year, season),
		TopManga:    []catalog.Item{},
	}

	if anime, ok := c.sources[catalog.Anime]; ok {
		result.TopAnime = anime.TopList(ctx, c.curatedLimit)
		if err := ctx.Err(); err != nil {
			return Curated{}, err
		}

		if seasonal, ok := anime.(SeasonalSource); ok {
			result.Trending = seasonal.CurrentSeason(ctx, c.curatedLimit)
			if err := ctx.Err(); err != nil {
				return Curated{}, err
			}
			result.Seasonal = seasonal.Season(ctx, year, season, c.curatedLimit)
			if err := ctx.Err(); err != nil {
				return Curated{}, err
			}
		}
	}

	if manga, ok := c.sources[catalog.Manga]; ok {
		result.TopManga = manga.TopList(ctx, c.curatedLimit)
		if err := ctx.Err(); err != nil {
			return Curated{}, err
		}
	}

	return result, nil
}
