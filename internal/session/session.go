// Package session owns the interactive search state: the current filters,
// the loading state machine, debounced input and last-write-wins delivery of
// results to subscribers.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/federate"
	"github.com/lepinkainen/otaku/internal/stats"
)

const (
	// DefaultDebounce is the quiet period for text and year edits.
	DefaultDebounce = 500 * time.Millisecond
	// CuratedPlaceholders is the number of skeleton cards per curated section.
	CuratedPlaceholders = 10
	// SearchPlaceholders is the number of skeleton cards for the search view.
	SearchPlaceholders = 10
)

// Backend produces the data a session displays. *federate.Coordinator
// satisfies it.
type Backend interface {
	Search(ctx context.Context, req federate.Request) (catalog.VirtualPage, error)
	Curated(ctx context.Context) (federate.Curated, error)
}

// Session is safe for concurrent use. Subscribers are called without any
// session lock held and may call back into the session.
type Session struct {
	backend   Backend
	debouncer *Debouncer
	exec      func(func())

	base     context.Context
	stop     context.CancelFunc
	inflight context.CancelFunc

	mu          sync.Mutex
	filters     catalog.Filters
	scope       catalog.Scope
	page        int
	lastPage    int // of the newest search result; 0 until one arrives
	generation  uint64
	version     uint64
	snapshot    Snapshot
	curated     *federate.Curated
	subscribers map[int]func(Snapshot)
	nextSub     int
}

// Option is a functional option for configuring a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	clock    Clock
	debounce time.Duration
	exec     func(func())
}

// WithClock sets the clock used for debouncing.
func WithClock(clock Clock) Option {
	return func(c *sessionConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithDebounce sets the quiet period for debounced edits.
func WithDebounce(d time.Duration) Option {
	return func(c *sessionConfig) {
		if d >= 0 {
			c.debounce = d
		}
	}
}

// WithExecutor sets how fetches are run. The default starts a goroutine;
// tests pass a synchronous executor.
func WithExecutor(exec func(func())) Option {
	return func(c *sessionConfig) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// New creates an idle session over backend.
func New(backend Backend, opts ...Option) *Session {
	cfg := sessionConfig{
		clock:    RealClock(),
		debounce: DefaultDebounce,
		exec:     func(f func()) { go f() },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	base, stop := context.WithCancel(context.Background())
	s := &Session{
		backend:     backend,
		debouncer:   NewDebouncer(cfg.clock, cfg.debounce),
		exec:        cfg.exec,
		base:        base,
		stop:        stop,
		filters:     catalog.DefaultFilters(),
		scope:       catalog.ScopeAll,
		page:        1,
		subscribers: make(map[int]func(Snapshot)),
	}
	s.snapshot = Snapshot{State: Idle, View: ViewCurated, Request: s.requestLocked()}
	return s
}

// Subscribe registers fn for every state change and returns a function that
// removes it. Snapshots may arrive out of order from concurrent fetches;
// compare Snapshot.Version to discard older ones.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Close cancels any in-flight fetch and pending debounced edit.
func (s *Session) Close() {
	s.debouncer.Cancel()
	s.stop()
}

// LoadCurated fetches the curated sections shown when no search is active.
func (s *Session) LoadCurated() {
	s.mu.Lock()
	s.debouncer.Cancel()
	s.showCuratedLocked(true)
}

// SetQuery updates the free-text query. The search runs once typing pauses.
func (s *Session) SetQuery(query string) {
	s.edit(true, func(f *catalog.Filters) { f.Query = query })
}

// SetYearMin updates the lower year bound (0 for none), debounced.
func (s *Session) SetYearMin(year int) {
	s.edit(true, func(f *catalog.Filters) { f.YearMin = max(0, year) })
}

// SetYearMax updates the upper year bound (0 for none), debounced.
func (s *Session) SetYearMax(year int) {
	s.edit(true, func(f *catalog.Filters) { f.YearMax = max(0, year) })
}

// SetStatus changes the status filter and searches immediately.
func (s *Session) SetStatus(status catalog.StatusFilter) {
	s.edit(false, func(f *catalog.Filters) { f.Status = status })
}

// SetGenre changes the genre filter and searches immediately.
func (s *Session) SetGenre(genre string) {
	s.edit(false, func(f *catalog.Filters) { f.Genre = genre })
}

// SetRatingMin changes the minimum score and searches immediately.
func (s *Session) SetRatingMin(rating float64) {
	s.edit(false, func(f *catalog.Filters) { f.RatingMin = max(0, rating) })
}

// SetSort changes the sort key and searches immediately.
func (s *Session) SetSort(sort catalog.Sort) {
	s.edit(false, func(f *catalog.Filters) { f.Sort = sort.OrDefault() })
}

// SetScope restricts the search to one catalog (or both) immediately.
func (s *Session) SetScope(scope catalog.Scope) {
	s.mu.Lock()
	s.scope = scope
	s.page = 1
	s.lastPage = 0
	s.debouncer.Cancel()
	s.triggerLocked()
}

// Apply re-runs the search for the current filters from page 1.
func (s *Session) Apply() {
	s.edit(false, func(*catalog.Filters) {})
}

// GotoPage moves to another application page of the current search.
// Requests for the current page, or outside [1, last page], are ignored.
// The last page is the one reported by the newest result of this search,
// so paging ahead while a page loads cannot run past it.
func (s *Session) GotoPage(page int) {
	s.mu.Lock()
	if s.snapshot.View != ViewSearch || page < 1 || page == s.page ||
		page > max(1, s.lastPage) {
		s.mu.Unlock()
		return
	}
	s.page = page
	s.debouncer.Cancel()
	s.triggerLocked()
}

// NextPage moves one page forward.
func (s *Session) NextPage() {
	s.GotoPage(s.currentPage() + 1)
}

// PrevPage moves one page back.
func (s *Session) PrevPage() {
	s.GotoPage(s.currentPage() - 1)
}

// Clear resets every filter and returns to the curated view.
func (s *Session) Clear() {
	s.mu.Lock()
	s.filters = catalog.DefaultFilters()
	s.scope = catalog.ScopeAll
	s.page = 1
	s.lastPage = 0
	s.debouncer.Cancel()
	s.triggerLocked()
}

func (s *Session) currentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *Session) edit(debounced bool, change func(*catalog.Filters)) {
	s.mu.Lock()
	change(&s.filters)
	s.page = 1
	s.lastPage = 0
	if debounced {
		s.mu.Unlock()
		s.debouncer.Schedule(func() {
			s.mu.Lock()
			s.triggerLocked()
		})
		return
	}
	s.debouncer.Cancel()
	s.triggerLocked()
}

func (s *Session) requestLocked() federate.Request {
	return federate.Request{Filters: s.filters, Scope: s.scope, Page: s.page}
}

// triggerLocked supersedes whatever is in flight and starts a fetch for the
// current state. It must be called with s.mu held and releases it.
func (s *Session) triggerLocked() {
	if !s.filters.Active() && s.scope == catalog.ScopeAll {
		s.showCuratedLocked(false)
		return
	}

	ctx, gen := s.supersedeLocked()
	req := s.requestLocked()
	requestID := uuid.NewString()

	s.setLocked(Snapshot{
		State:        Loading,
		View:         ViewSearch,
		Request:      req,
		RequestID:    requestID,
		Placeholders: SearchPlaceholders,
	})
	s.publishUnlock()

	slog.Debug("Search requested", "request_id", requestID, "page", req.Page, "scope", req.Scope, "query", req.Filters.Query)

	s.exec(func() {
		page, err := s.backend.Search(ctx, req)
		s.finish(gen, requestID, func(snap *Snapshot) {
			s.lastPage = page.LastPage
			snap.Page = page
			snap.PageStats = stats.ForPage(page)
		}, err)
	})
}

// showCuratedLocked switches to the curated view, fetching the sections the
// first time (or again when reload is set). Releases s.mu.
func (s *Session) showCuratedLocked(reload bool) {
	ctx, gen := s.supersedeLocked()
	req := s.requestLocked()

	if s.curated != nil && !reload {
		curated := *s.curated
		s.setLocked(Snapshot{
			State:        Ready,
			View:         ViewCurated,
			Request:      req,
			Curated:      curated,
			CuratedStats: stats.Compute(curated.All()),
		})
		s.publishUnlock()
		return
	}

	requestID := uuid.NewString()
	s.setLocked(Snapshot{
		State:        Loading,
		View:         ViewCurated,
		Request:      req,
		RequestID:    requestID,
		Placeholders: CuratedPlaceholders,
	})
	s.publishUnlock()

	slog.Debug("Curated sections requested", "request_id", requestID)

	s.exec(func() {
		curated, err := s.backend.Curated(ctx)
		s.finish(gen, requestID, func(snap *Snapshot) {
			s.curated = &curated
			snap.Curated = curated
			snap.CuratedStats = stats.Compute(curated.All())
		}, err)
	})
}

// supersedeLocked cancels the in-flight fetch and returns the context and
// generation for the next one.
func (s *Session) supersedeLocked() (context.Context, uint64) {
	if s.inflight != nil {
		s.inflight()
	}
	ctx, cancel := context.WithCancel(s.base)
	s.inflight = cancel
	s.generation++
	return ctx, s.generation
}

// finish applies a completed fetch unless a newer request superseded it.
func (s *Session) finish(gen uint64, requestID string, apply func(*Snapshot), err error) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		slog.Debug("Discarding superseded result", "request_id", requestID)
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.mu.Unlock()
		slog.Debug("Fetch cancelled", "request_id", requestID)
		return
	}

	next := s.snapshot
	next.Placeholders = 0
	if err != nil {
		next.State = Error
		next.Err = err
		slog.Error("Fetch failed", "request_id", requestID, "error", err)
	} else {
		next.State = Ready
		apply(&next)
	}
	s.setLocked(next)
	s.publishUnlock()
}

func (s *Session) setLocked(snap Snapshot) {
	s.version++
	snap.Version = s.version
	s.snapshot = snap
}

// publishUnlock releases s.mu and then notifies subscribers of the current
// snapshot.
func (s *Session) publishUnlock() {
	snap := s.snapshot
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
