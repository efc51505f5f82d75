package catalog

const (
	// UpstreamMaxLimit is the largest page Jikan serves per request.
	UpstreamMaxLimit = 25
	// PagesPerAppPage is how many upstream pages one application page spans.
	PagesPerAppPage = 2
	// AppPageSize is the number of results an application page presents.
	AppPageSize = UpstreamMaxLimit * PagesPerAppPage
)

// VirtualPage is one merged, deduplicated and sorted application page.
type VirtualPage struct {
	Items       []Item       `json:"items" yaml:"items"`
	GrandTotal  int          `json:"grand_total" yaml:"grand_total"`
	CurrentPage int          `json:"current_page" yaml:"current_page"`
	LastPage    int          `json:"last_page" yaml:"last_page"`
	Totals      map[Kind]int `json:"totals" yaml:"totals"`
	// Unavailable lists the sources whose upstream calls failed. Their
	// contribution is empty, which is otherwise indistinguishable from
	// a search with no matches.
	Unavailable []Kind `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
}

// UpstreamPages returns the two upstream page numbers that make up appPage.
// Pages below 1 are treated as page 1.
func UpstreamPages(appPage int) (first, second int) {
	if appPage < 1 {
		appPage = 1
	}
	first = (appPage-1)*PagesPerAppPage + 1
	return first, first + 1
}

// AppLastPage converts the largest upstream last page into an application
// last page, rounding up.
func AppLastPage(lastUpstream int) int {
	if lastUpstream < 1 {
		lastUpstream = 1
	}
	return (lastUpstream + PagesPerAppPage - 1) / PagesPerAppPage
}

// Ellipsis marks a gap in the result of PageWindow.
const Ellipsis = 0

// PageWindow returns the page buttons to show for a compact paginator:
// every page when there are at most seven, otherwise the first and last
// pages, the neighbours of current, and Ellipsis where pages are skipped.
func PageWindow(current, last int) []int {
	if last < 1 {
		return nil
	}
	if last <= 7 {
		pages := make([]int, last)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	pages := []int{1}
	if current > 3 {
		pages = append(pages, Ellipsis)
	}
	for p := max(2, current-1); p <= min(last-1, current+1); p++ {
		pages = append(pages, p)
	}
	if current < last-2 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, last)
}
