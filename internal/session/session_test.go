package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/federate"
)

type fakeBackend struct {
	mu           sync.Mutex
	requests     []federate.Request
	curatedCalls int
	searchErr    error
	// block, when set, makes Search wait for the channel or cancellation.
	block chan struct{}
}

func (b *fakeBackend) Search(ctx context.Context, req federate.Request) (catalog.VirtualPage, error) {
	b.mu.Lock()
	b.requests = append(b.requests, req)
	block := b.block
	b.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return catalog.VirtualPage{}, ctx.Err()
		}
	}
	if b.searchErr != nil {
		return catalog.VirtualPage{}, b.searchErr
	}

	item := catalog.NewItem(catalog.Anime, req.Page, req.Filters.Query)
	item.Rating = 8
	return catalog.VirtualPage{
		Items:       []catalog.Item{item},
		GrandTotal:  120,
		CurrentPage: req.Page,
		LastPage:    3,
		Totals:      map[catalog.Kind]int{catalog.Anime: 120},
	}, nil
}

func (b *fakeBackend) Curated(context.Context) (federate.Curated, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.curatedCalls++
	top := catalog.NewItem(catalog.Anime, 1, "Top")
	top.Rating = 9
	manga := catalog.NewItem(catalog.Manga, 1, "Manga")
	manga.Rating = 7
	return federate.Curated{
		TopAnime:    []catalog.Item{top},
		Trending:    []catalog.Item{top},
		Seasonal:    []catalog.Item{},
		SeasonLabel: "Fall 2026 Anime",
		TopManga:    []catalog.Item{manga},
	}, nil
}

func (b *fakeBackend) searchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func syncExec(f func()) { f() }

func newTestSession(t *testing.T, backend Backend) (*Session, *manualClock, *[]Snapshot) {
	t.Helper()
	clock := &manualClock{}
	s := New(backend, WithClock(clock), WithExecutor(syncExec))
	t.Cleanup(s.Close)

	var snaps []Snapshot
	s.Subscribe(func(snap Snapshot) { snaps = append(snaps, snap) })
	return s, clock, &snaps
}

func states(snaps []Snapshot) []State {
	out := make([]State, len(snaps))
	for i, s := range snaps {
		out[i] = s.State
	}
	return out
}

func TestSessionStartsIdle(t *testing.T) {
	s := New(&fakeBackend{})
	defer s.Close()

	assert.Equal(t, Idle, s.Snapshot().State)
	assert.Equal(t, "idle", s.Snapshot().State.String())
}

func TestLoadCuratedTransitions(t *testing.T) {
	backend := &fakeBackend{}
	s, _, snaps := newTestSession(t, backend)

	s.LoadCurated()

	require.Equal(t, []State{Loading, Ready}, states(*snaps))
	loading := (*snaps)[0]
	assert.Equal(t, ViewCurated, loading.View)
	assert.Equal(t, CuratedPlaceholders, loading.Placeholders)

	ready := s.Snapshot()
	assert.Zero(t, ready.Placeholders)
	assert.Equal(t, "Fall 2026 Anime", ready.Curated.SeasonLabel)
	assert.Equal(t, 2, ready.CuratedStats.Count)
	assert.InDelta(t, 8.0, ready.CuratedStats.AverageRating, 0.0001)
	assert.Greater(t, ready.Version, loading.Version)
}

func TestDebouncedQueryTriggersOneSearch(t *testing.T) {
	backend := &fakeBackend{}
	s, clock, _ := newTestSession(t, backend)

	s.SetQuery("f")
	clock.Advance(200 * time.Millisecond)
	s.SetQuery("fr")
	clock.Advance(200 * time.Millisecond)
	s.SetQuery("frieren")
	clock.Advance(499 * time.Millisecond)
	assert.Zero(t, backend.searchCount())

	clock.Advance(time.Millisecond)
	require.Equal(t, 1, backend.searchCount())
	assert.Equal(t, "frieren", backend.requests[0].Filters.Query)
	assert.Equal(t, Ready, s.Snapshot().State)
	assert.Equal(t, ViewSearch, s.Snapshot().View)
}

func TestDebouncedYearRange(t *testing.T) {
	backend := &fakeBackend{}
	s, clock, _ := newTestSession(t, backend)

	s.SetYearMin(2000)
	clock.Advance(100 * time.Millisecond)
	s.SetYearMax(2010)
	clock.Advance(500 * time.Millisecond)

	require.Equal(t, 1, backend.searchCount())
	assert.Equal(t, 2000, backend.requests[0].Filters.YearMin)
	assert.Equal(t, 2010, backend.requests[0].Filters.YearMax)
}

func TestDiscreteChangesAreImmediate(t *testing.T) {
	backend := &fakeBackend{}
	s, _, snaps := newTestSession(t, backend)

	s.SetGenre("Action")

	require.Equal(t, 1, backend.searchCount())
	assert.Equal(t, []State{Loading, Ready}, states(*snaps))
	assert.Equal(t, SearchPlaceholders, (*snaps)[0].Placeholders)
	assert.NotEmpty(t, (*snaps)[0].RequestID)
	assert.Empty(t, (*snaps)[0].Page.Items)

	ready := s.Snapshot()
	assert.Equal(t, 120, ready.PageStats.GrandTotal)
	assert.Equal(t, 1, ready.PageStats.Page.Count)
}

func TestDiscreteChangeCancelsPendingDebounce(t *testing.T) {
	backend := &fakeBackend{}
	s, clock, _ := newTestSession(t, backend)

	s.SetQuery("one piece")
	s.SetStatus(catalog.FilterOngoing)
	clock.Advance(time.Second)

	require.Equal(t, 1, backend.searchCount())
	assert.Equal(t, "one piece", backend.requests[0].Filters.Query)
	assert.Equal(t, catalog.FilterOngoing, backend.requests[0].Filters.Status)
}

func TestPaging(t *testing.T) {
	backend := &fakeBackend{}
	s, _, _ := newTestSession(t, backend)

	s.SetScope(catalog.ScopeManga)
	s.NextPage()
	s.NextPage()
	s.NextPage()  // past last page (3), ignored
	s.GotoPage(3) // current page, ignored
	s.PrevPage()

	pages := []int{}
	for _, r := range backend.requests {
		pages = append(pages, r.Page)
	}
	assert.Equal(t, []int{1, 2, 3, 2}, pages)
	assert.Equal(t, catalog.ScopeManga, backend.requests[0].Scope)
}

func TestFilterChangeResetsPage(t *testing.T) {
	backend := &fakeBackend{}
	s, _, _ := newTestSession(t, backend)

	s.SetRatingMin(7)
	s.NextPage()
	s.SetSort(catalog.SortTitleAsc)

	last := backend.requests[len(backend.requests)-1]
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, catalog.SortTitleAsc, last.Filters.Sort)
	assert.InDelta(t, 7.0, last.Filters.RatingMin, 0.0001)
}

func TestClearReturnsToCuratedWithoutRefetch(t *testing.T) {
	backend := &fakeBackend{}
	s, _, _ := newTestSession(t, backend)

	s.LoadCurated()
	s.SetGenre("Drama")
	s.Clear()

	snap := s.Snapshot()
	assert.Equal(t, ViewCurated, snap.View)
	assert.Equal(t, Ready, snap.State)
	assert.Equal(t, 1, backend.curatedCalls)
	assert.Equal(t, catalog.DefaultFilters(), snap.Request.Filters)
}

func TestSortAloneShowsCurated(t *testing.T) {
	backend := &fakeBackend{}
	s, _, _ := newTestSession(t, backend)

	s.SetSort(catalog.SortYearAsc)

	assert.Zero(t, backend.searchCount())
	assert.Equal(t, ViewCurated, s.Snapshot().View)
}

func TestBackendErrorEntersErrorState(t *testing.T) {
	backend := &fakeBackend{searchErr: errors.New("boom")}
	s, _, _ := newTestSession(t, backend)

	s.Apply() // no active filters: curated view
	s.SetScope(catalog.ScopeAnime)

	snap := s.Snapshot()
	assert.Equal(t, Error, snap.State)
	assert.EqualError(t, snap.Err, "boom")
}

func TestLatestRequestWins(t *testing.T) {
	backend := &fakeBackend{block: make(chan struct{})}
	clock := &manualClock{}
	s := New(backend, WithClock(clock))
	defer s.Close()

	var mu sync.Mutex
	var readies []Snapshot
	done := make(chan struct{}, 4)
	s.Subscribe(func(snap Snapshot) {
		if snap.State != Ready {
			return
		}
		mu.Lock()
		readies = append(readies, snap)
		mu.Unlock()
		done <- struct{}{}
	})

	s.SetGenre("Action")
	require.Eventually(t, func() bool { return backend.searchCount() == 1 }, time.Second, time.Millisecond)
	s.SetGenre("Horror")
	require.Eventually(t, func() bool { return backend.searchCount() == 2 }, time.Second, time.Millisecond)
	close(backend.block)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
	// Give a superseded fetch the chance to (wrongly) report.
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, readies, 1)
	assert.Equal(t, "Horror", readies[0].Request.Filters.Genre)
	assert.Equal(t, "Horror", s.Snapshot().Request.Filters.Genre)
}

func TestUnsubscribe(t *testing.T) {
	s, _, _ := newTestSession(t, &fakeBackend{})
	calls := 0
	unsubscribe := s.Subscribe(func(Snapshot) { calls++ })

	s.LoadCurated()
	unsubscribe()
	s.SetGenre("Action")

	assert.Equal(t, 2, calls)
}

// queuedExec holds fetches until run is called, leaving the session Loading.
type queuedExec struct {
	pending []func()
}

func (q *queuedExec) exec(f func()) { q.pending = append(q.pending, f) }

func (q *queuedExec) run() {
	pending := q.pending
	q.pending = nil
	for _, f := range pending {
		f()
	}
}

func TestPagingWhileLoadingStopsAtLastPage(t *testing.T) {
	backend := &fakeBackend{}
	queue := &queuedExec{}
	s := New(backend, WithClock(&manualClock{}), WithExecutor(queue.exec))
	defer s.Close()

	s.SetGenre("Action")
	s.NextPage() // last page not known yet
	assert.Equal(t, 1, s.Snapshot().Request.Page)

	queue.run()
	require.Equal(t, Ready, s.Snapshot().State)
	require.Equal(t, 3, s.Snapshot().Page.LastPage)

	for range 5 {
		s.NextPage()
	}

	snap := s.Snapshot()
	assert.Equal(t, Loading, snap.State)
	assert.Equal(t, 3, snap.Request.Page)

	queue.run()
	assert.Equal(t, Ready, s.Snapshot().State)
	assert.Equal(t, 3, s.Snapshot().Page.CurrentPage)
}

func TestFilterChangeForgetsLastPage(t *testing.T) {
	backend := &fakeBackend{}
	queue := &queuedExec{}
	s := New(backend, WithClock(&manualClock{}), WithExecutor(queue.exec))
	defer s.Close()

	s.SetGenre("Action")
	queue.run()
	s.SetGenre("Drama")
	s.NextPage()

	assert.Equal(t, 1, s.Snapshot().Request.Page)
}
