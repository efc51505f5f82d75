package jikan

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/lepinkainen/otaku/internal/catalog"
)

// genreIDs maps the unified genre names onto MyAnimeList genre ids.
// Anime and manga share the same ids for these genres.
var genreIDs = map[string]int{
	"Action":        1,
	"Adventure":     2,
	"Comedy":        4,
	"Mystery":       7,
	"Drama":         8,
	"Fantasy":       10,
	"Horror":        14,
	"Mecha":         18,
	"Romance":       22,
	"Sci-Fi":        24,
	"Sports":        30,
	"Slice of Life": 36,
	"Supernatural":  37,
	"Psychological": 40,
	"Thriller":      41,
}

// GenreID returns the upstream id for a genre name.
func GenreID(name string) (int, bool) {
	id, ok := genreIDs[name]
	return id, ok
}

// Genres returns the supported genre names in alphabetical order.
func Genres() []string {
	return []string{
		"Action", "Adventure", "Comedy", "Drama", "Fantasy", "Horror", "Mecha",
		"Mystery", "Psychological", "Romance", "Sci-Fi", "Slice of Life",
		"Sports", "Supernatural", "Thriller",
	}
}

func upstreamStatus(kind catalog.Kind, status catalog.StatusFilter) string {
	switch status {
	case catalog.FilterOngoing:
		if kind == catalog.Manga {
			return "publishing"
		}
		return "airing"
	case catalog.FilterCompleted:
		return "complete"
	case catalog.FilterUpcoming:
		return "upcoming"
	default:
		return ""
	}
}

// SortParams maps a unified sort key onto Jikan's order_by and sort values.
func SortParams(key catalog.Sort) (orderBy, direction string) {
	switch key {
	case catalog.SortRatingAsc:
		return "score", "asc"
	case catalog.SortTitleAsc:
		return "title", "asc"
	case catalog.SortTitleDesc:
		return "title", "desc"
	case catalog.SortYearDesc:
		return "start_date", "desc"
	case catalog.SortYearAsc:
		return "start_date", "asc"
	default:
		return "score", "desc"
	}
}

// Translate converts the unified filters into Jikan query parameters for one
// source kind. Unset filters produce no parameter at all.
func Translate(kind catalog.Kind, filters catalog.Filters) url.Values {
	params := url.Values{}

	if q := strings.TrimSpace(filters.Query); q != "" {
		params.Set("q", q)
	}

	if status := upstreamStatus(kind, filters.Status); status != "" {
		params.Set("status", status)
	}

	if id, ok := GenreID(filters.Genre); ok {
		params.Set("genres", strconv.Itoa(id))
	}

	if filters.YearMin > 0 {
		params.Set("start_date", fmt.Sprintf("%04d-01-01", filters.YearMin))
	}
	if filters.YearMax > 0 {
		params.Set("end_date", fmt.Sprintf("%04d-12-31", filters.YearMax))
	}

	if filters.RatingMin > 0 {
		params.Set("min_score", strconv.FormatFloat(filters.RatingMin, 'f', -1, 64))
	}

	orderBy, direction := SortParams(filters.Sort)
	params.Set("order_by", orderBy)
	params.Set("sort", direction)

	return params
}
