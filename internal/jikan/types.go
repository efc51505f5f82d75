package jikan

import "github.com/lepinkainen/otaku/internal/catalog"

// Page is one upstream search page for a single source kind.
type Page struct {
	Kind        catalog.Kind
	Items       []catalog.Item
	Total       int
	CurrentPage int
	LastPage    int
	// Failed is set by Source when the call failed and the page was zeroed.
	Failed bool
}

// record holds the fields shared by Jikan anime and manga entries. Every
// field may be null or missing upstream.
type record struct {
	MalID    int      `json:"mal_id"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Status   string   `json:"status"`
	Score    *float64 `json:"score"`
	Synopsis string   `json:"synopsis"`
	Year     *int     `json:"year"`
	Images   struct {
		JPG struct {
			ImageURL      string `json:"image_url"`
			LargeImageURL string `json:"large_image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Genres []struct {
		MalID int    `json:"mal_id"`
		Name  string `json:"name"`
	} `json:"genres"`
	Aired struct {
		From string `json:"from"`
	} `json:"aired"`
	Published struct {
		From string `json:"from"`
	} `json:"published"`
}

type pagination struct {
	LastVisiblePage *int `json:"last_visible_page"`
	CurrentPage     *int `json:"current_page"`
	Items           *struct {
		Count   int  `json:"count"`
		Total   *int `json:"total"`
		PerPage int  `json:"per_page"`
	} `json:"items"`
}

// listResponse is the envelope of every list endpoint used here.
type listResponse struct {
	Data       []record    `json:"data"`
	Pagination *pagination `json:"pagination"`
}
