package jikan

import (
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/otaku/internal/catalog"
)

// normalize converts one upstream record into a catalog item. Missing or
// null fields fall back to the catalog defaults.
func normalize(kind catalog.Kind, r record) catalog.Item {
	item := catalog.NewItem(kind, r.MalID, r.Title)
	item.Status = catalog.ParseStatus(r.Status)
	item.ExternalLink = r.URL

	for _, g := range r.Genres {
		if g.Name != "" {
			item.Genres = append(item.Genres, g.Name)
		}
	}

	if r.Score != nil && *r.Score > 0 {
		item.Rating = min(*r.Score, 10)
	}

	if desc := strings.TrimSpace(r.Synopsis); desc != "" {
		item.Description = desc
	}

	item.ImageURL = r.Images.JPG.LargeImageURL
	if item.ImageURL == "" {
		item.ImageURL = r.Images.JPG.ImageURL
	}

	switch kind {
	case catalog.Anime:
		if r.Year != nil && *r.Year > 0 {
			item.Year = *r.Year
		} else {
			item.Year = yearOf(r.Aired.From)
		}
	case catalog.Manga:
		item.Year = yearOf(r.Published.From)
	}

	return item
}

// yearOf extracts the year from an ISO 8601 timestamp such as
// "2004-10-05T00:00:00+00:00". Returns 0 when the value is empty or invalid.
func yearOf(date string) int {
	if date == "" {
		return 0
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Year()
	}
	if len(date) >= 4 {
		if year, err := strconv.Atoi(date[:4]); err == nil && year > 0 {
			return year
		}
	}
	return 0
}

func normalizeAll(kind catalog.Kind, records []record) []catalog.Item {
	items := make([]catalog.Item, 0, len(records))
	for _, r := range records {
		items = append(items, normalize(kind, r))
	}
	return items
}
