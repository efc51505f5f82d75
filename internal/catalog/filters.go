package catalog

import "strings"

// AllValues is the "no filter" value for status and genre.
const AllValues = "all"

// Sort is the unified ordering vocabulary.
type Sort string

const (
	SortRatingDesc Sort = "rating-desc"
	SortRatingAsc  Sort = "rating-asc"
	SortTitleAsc   Sort = "title-asc"
	SortTitleDesc  Sort = "title-desc"
	SortYearDesc   Sort = "year-desc"
	SortYearAsc    Sort = "year-asc"
)

// Sorts lists every supported sort key.
var Sorts = []Sort{SortRatingDesc, SortRatingAsc, SortTitleAsc, SortTitleDesc, SortYearDesc, SortYearAsc}

// OrDefault returns s if it is supported, otherwise SortRatingDesc.
func (s Sort) OrDefault() Sort {
	for _, known := range Sorts {
		if s == known {
			return s
		}
	}
	return SortRatingDesc
}

// StatusFilter is the unified status vocabulary used for filtering.
type StatusFilter string

const (
	FilterAll       StatusFilter = AllValues
	FilterOngoing   StatusFilter = "ongoing"
	FilterCompleted StatusFilter = "completed"
	FilterUpcoming  StatusFilter = "upcoming"
)

// StatusFilters lists the status filter choices in display order.
var StatusFilters = []StatusFilter{FilterAll, FilterOngoing, FilterCompleted, FilterUpcoming}

// Scope restricts a search to one or both catalogs.
type Scope string

const (
	ScopeAll   Scope = AllValues
	ScopeAnime Scope = "anime"
	ScopeManga Scope = "manga"
)

// Scopes lists the scope choices in display order.
var Scopes = []Scope{ScopeAll, ScopeAnime, ScopeManga}

// Kinds returns the source kinds a scope covers. Unknown scopes cover both.
func (s Scope) Kinds() []Kind {
	switch s {
	case ScopeAnime:
		return []Kind{Anime}
	case ScopeManga:
		return []Kind{Manga}
	default:
		return Kinds
	}
}

// Includes reports whether kind is searched under this scope.
func (s Scope) Includes(kind Kind) bool {
	for _, k := range s.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Filters is the immutable per-request filter set.
// Zero YearMin, YearMax and RatingMin mean "no bound".
type Filters struct {
	Query     string       `json:"query,omitempty" yaml:"query,omitempty"`
	Status    StatusFilter `json:"status,omitempty" yaml:"status,omitempty"`
	Genre     string       `json:"genre,omitempty" yaml:"genre,omitempty"`
	YearMin   int          `json:"year_min,omitempty" yaml:"year_min,omitempty"`
	YearMax   int          `json:"year_max,omitempty" yaml:"year_max,omitempty"`
	RatingMin float64      `json:"rating_min,omitempty" yaml:"rating_min,omitempty"`
	Sort      Sort         `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// DefaultFilters returns the cleared filter set.
func DefaultFilters() Filters {
	return Filters{
		Status: FilterAll,
		Genre:  AllValues,
		Sort:   SortRatingDesc,
	}
}

// Active reports whether any narrowing filter or query is set.
// Sort order alone does not make a filter set active.
func (f Filters) Active() bool {
	return strings.TrimSpace(f.Query) != "" ||
		(f.Status != "" && f.Status != FilterAll) ||
		(f.Genre != "" && f.Genre != AllValues) ||
		f.YearMin > 0 ||
		f.YearMax > 0 ||
		f.RatingMin > 0
}
