package session

import (
	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/federate"
	"github.com/lepinkainen/otaku/internal/stats"
)

// State is the loading state of the displayed view.
type State int

const (
	Idle State = iota
	Loading
	Ready
	// Error is entered only if the backend reports a failure other than
	// cancellation. The federated coordinator degrades to empty results
	// instead, so with it this state is not reached.
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// View says which result set a snapshot describes.
type View int

const (
	// ViewCurated shows the top/trending/seasonal sections.
	ViewCurated View = iota
	// ViewSearch shows one page of search results.
	ViewSearch
)

// Snapshot is an immutable copy of the session state handed to subscribers.
type Snapshot struct {
	Version   uint64
	State     State
	View      View
	Request   federate.Request
	RequestID string

	// Placeholders is the number of skeleton cards to draw while Loading:
	// per section in the curated view, in total in the search view.
	Placeholders int

	Curated      federate.Curated
	CuratedStats stats.Stats

	Page      catalog.VirtualPage
	PageStats stats.PageStats

	Err error
}
