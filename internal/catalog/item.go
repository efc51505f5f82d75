// Package catalog holds the unified anime/manga item model shared by the
// Jikan sources, the federated coordinator and every presentation adapter.
package catalog

import (
	"fmt"
	"strings"
)

const (
	// UnknownTitle is used when upstream omits a title.
	UnknownTitle = "Unknown"
	// NoDescription is used when upstream omits a synopsis.
	NoDescription = "No description available."
)

// Kind identifies which upstream catalog an item came from.
type Kind string

const (
	Anime Kind = "anime"
	Manga Kind = "manga"
)

// Kinds lists every source kind in a fixed order.
var Kinds = []Kind{Anime, Manga}

// Status is the normalized publication/airing state of an item.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusUpcoming  Status = "upcoming"
	StatusUnknown   Status = "unknown"
)

// ParseStatus maps the free-text upstream status ("Currently Airing",
// "Finished", "Publishing", ...) onto Status.
func ParseStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return StatusUnknown
	case strings.Contains(s, "finished"):
		return StatusCompleted
	case strings.Contains(s, "airing"), strings.Contains(s, "publishing"):
		return StatusOngoing
	case strings.Contains(s, "upcoming"):
		return StatusUpcoming
	default:
		return StatusOngoing
	}
}

// Item is one anime or manga entry in the unified shape.
// Items are built once per upstream response and never modified afterwards.
type Item struct {
	ID           string   `json:"id" yaml:"id"`
	NativeID     int      `json:"mal_id" yaml:"mal_id"`
	Title        string   `json:"title" yaml:"title"`
	Kind         Kind     `json:"type" yaml:"type"`
	Genres       []string `json:"genres" yaml:"genres"`
	Status       Status   `json:"status" yaml:"status"`
	Rating       float64  `json:"rating" yaml:"rating"`
	Year         int      `json:"year" yaml:"year"`
	ImageURL     string   `json:"image,omitempty" yaml:"image,omitempty"`
	Description  string   `json:"description" yaml:"description"`
	ExternalLink string   `json:"link,omitempty" yaml:"link,omitempty"`
}

// ItemID builds the composite dedup key for a native upstream id.
func ItemID(kind Kind, nativeID int) string {
	return fmt.Sprintf("%s-%d", kind, nativeID)
}

// NewItem builds an Item, applying the defaults for missing upstream data.
func NewItem(kind Kind, nativeID int, title string) Item {
	if strings.TrimSpace(title) == "" {
		title = UnknownTitle
	}
	return Item{
		ID:          ItemID(kind, nativeID),
		NativeID:    nativeID,
		Title:       title,
		Kind:        kind,
		Genres:      []string{},
		Status:      StatusUnknown,
		Description: NoDescription,
	}
}

// Dedupe drops items whose ID has already been seen. The first occurrence wins
// and the relative order of the survivors is preserved.
func Dedupe(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}
