package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
	}{
		{"Currently Airing", StatusOngoing},
		{"Publishing", StatusOngoing},
		{"Finished Airing", StatusCompleted},
		{"Finished", StatusCompleted},
		{"FINISHED PUBLISHING", StatusCompleted},
		{"Not yet aired", StatusOngoing},
		{"Upcoming", StatusUpcoming},
		{"On Hiatus", StatusOngoing},
		{"", StatusUnknown},
		{"   ", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseStatus(tt.input))
		})
	}
}

func TestNewItemDefaults(t *testing.T) {
	item := NewItem(Manga, 42, "")

	assert.Equal(t, "manga-42", item.ID)
	assert.Equal(t, 42, item.NativeID)
	assert.Equal(t, UnknownTitle, item.Title)
	assert.Equal(t, NoDescription, item.Description)
	assert.Equal(t, StatusUnknown, item.Status)
	assert.NotNil(t, item.Genres)
	assert.Empty(t, item.Genres)
}

func TestDedupeFirstOccurrenceWins(t *testing.T) {
	first := NewItem(Anime, 1, "First")
	dup := NewItem(Anime, 1, "Duplicate")
	manga := NewItem(Manga, 1, "Same native id, other kind")

	out := Dedupe([]Item{first, manga, dup})

	assert.Len(t, out, 2)
	assert.Equal(t, "First", out[0].Title)
	assert.Equal(t, "manga-1", out[1].ID)
}

func TestScopeKinds(t *testing.T) {
	assert.Equal(t, []Kind{Anime, Manga}, ScopeAll.Kinds())
	assert.Equal(t, []Kind{Anime}, ScopeAnime.Kinds())
	assert.Equal(t, []Kind{Manga}, ScopeManga.Kinds())
	assert.Equal(t, []Kind{Anime, Manga}, Scope("bogus").Kinds())
	assert.False(t, ScopeAnime.Includes(Manga))
}

func TestFiltersActive(t *testing.T) {
	assert.False(t, DefaultFilters().Active())
	assert.False(t, Filters{Sort: SortTitleAsc}.Active())

	f := DefaultFilters()
	f.Query = "  "
	assert.False(t, f.Active())

	f.Query = "berserk"
	assert.True(t, f.Active())

	g := DefaultFilters()
	g.RatingMin = 7
	assert.True(t, g.Active())
}
