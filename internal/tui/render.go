package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/session"
)

const skeletonCell = "▒▒▒▒"

type curatedSection struct {
	title string
	items []catalog.Item
}

func curatedSections(snap session.Snapshot) []curatedSection {
	seasonal := snap.Curated.SeasonLabel
	if seasonal == "" {
		seasonal = "This Season"
	}
	return []curatedSection{
		{title: "Top Anime", items: snap.Curated.TopAnime},
		{title: "Trending Now", items: snap.Curated.Trending},
		{title: seasonal, items: snap.Curated.Seasonal},
		{title: "Top Manga", items: snap.Curated.TopManga},
	}
}

// renderPlaceholders draws skeleton cards: one row per curated section, or
// one line per expected search result.
func renderPlaceholders(snap session.Snapshot, width int) string {
	if snap.View == session.ViewCurated {
		lines := make([]string, 0, 8)
		for _, section := range curatedSections(snap) {
			lines = append(lines, labelStyle.Render(section.title))
			lines = append(lines, skeletonStyle.Render(strings.TrimSpace(strings.Repeat(skeletonCell+" ", snap.Placeholders))))
		}
		return strings.Join(lines, "\n")
	}

	line := strings.Repeat("▒", max(width, 10))
	lines := make([]string, snap.Placeholders)
	for i := range lines {
		lines[i] = skeletonStyle.Render(line)
	}
	return strings.Join(lines, "\n")
}

// renderStats summarises the view above the result list.
func renderStats(snap session.Snapshot) string {
	switch {
	case snap.State != session.Ready:
		return ""
	case snap.View == session.ViewCurated:
		s := snap.CuratedStats
		return fmt.Sprintf("%d titles · %d anime · %d manga · avg rating %.1f",
			s.Count, s.ByKind[catalog.Anime], s.ByKind[catalog.Manga], s.AverageRating)
	}

	s := snap.PageStats
	out := fmt.Sprintf("%d results · %d anime · %d manga · page avg %.1f",
		s.GrandTotal, s.Totals[catalog.Anime], s.Totals[catalog.Manga], s.Page.AverageRating)
	if len(snap.Page.Unavailable) > 0 {
		kinds := make([]string, len(snap.Page.Unavailable))
		for i, k := range snap.Page.Unavailable {
			kinds[i] = string(k)
		}
		out += " · unavailable: " + strings.Join(kinds, ", ")
	}
	return out
}

// renderPager draws the page number window, marking the current page.
func renderPager(current, last int) string {
	window := catalog.PageWindow(current, last)
	parts := make([]string, 0, len(window)+2)
	if current > 1 {
		parts = append(parts, "‹")
	}
	for _, p := range window {
		switch p {
		case catalog.Ellipsis:
			parts = append(parts, "…")
		case current:
			parts = append(parts, "["+strconv.Itoa(p)+"]")
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	if current < last {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ")
}
