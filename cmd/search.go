package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/config"
	"github.com/lepinkainen/otaku/internal/datastore"
	"github.com/lepinkainen/otaku/internal/federate"
	"github.com/lepinkainen/otaku/internal/fileutil"
	"github.com/lepinkainen/otaku/internal/jikan"
	"github.com/lepinkainen/otaku/internal/stats"
)

// SearchCmd represents the search command
type SearchCmd struct {
	Query      []string `arg:"" optional:"" help:"Free-text title query"`
	Type       string   `short:"t" help:"Catalog to search (all, anime, manga)" enum:"all,anime,manga" default:"all"`
	Status     string   `short:"s" help:"Status filter (all, ongoing, completed, upcoming)" enum:"all,ongoing,completed,upcoming" default:"all"`
	Genre      string   `short:"g" help:"Genre name, see 'otaku genres'" default:"all"`
	YearMin    int      `help:"Earliest start year (0 for no bound)" default:"0"`
	YearMax    int      `help:"Latest start year (0 for no bound)" default:"0"`
	RatingMin  float64  `help:"Minimum score from 0 to 10" default:"0"`
	Sort       string   `help:"Sort order" enum:"rating-desc,rating-asc,title-asc,title-desc,year-desc,year-asc" default:"rating-desc"`
	Page       int      `short:"p" help:"Result page" default:"1"`
	Format     string   `short:"f" help:"Output format (table, json, yaml)" enum:"table,json,yaml" default:"table"`
	JSONOutput string   `help:"Also write the result page to this file (.yaml/.yml for YAML)"`
	SQLite     string   `name:"sqlite" help:"Also export the result page to this SQLite database"`
}

// searchResult is the structured form of one search page.
type searchResult struct {
	Request federate.Request    `json:"request" yaml:"request"`
	Page    catalog.VirtualPage `json:"page" yaml:"page"`
	Stats   stats.PageStats     `json:"stats" yaml:"stats"`
}

// request validates the flags and turns them into a coordinator request.
func (s *SearchCmd) request() (federate.Request, error) {
	genre, err := resolveGenre(s.Genre)
	if err != nil {
		return federate.Request{}, err
	}
	if s.YearMin < 0 || s.YearMax < 0 {
		return federate.Request{}, fmt.Errorf("years must not be negative")
	}
	if s.YearMin > 0 && s.YearMax > 0 && s.YearMin > s.YearMax {
		return federate.Request{}, fmt.Errorf("--year-min %d is after --year-max %d", s.YearMin, s.YearMax)
	}
	if s.RatingMin < 0 || s.RatingMin > 10 {
		return federate.Request{}, fmt.Errorf("--rating-min must be between 0 and 10, got %g", s.RatingMin)
	}
	if s.Page < 1 {
		return federate.Request{}, fmt.Errorf("--page must be at least 1, got %d", s.Page)
	}

	return federate.Request{
		Filters: catalog.Filters{
			Query:     strings.TrimSpace(strings.Join(s.Query, " ")),
			Status:    catalog.StatusFilter(s.Status),
			Genre:     genre,
			YearMin:   s.YearMin,
			YearMax:   s.YearMax,
			RatingMin: s.RatingMin,
			Sort:      catalog.Sort(s.Sort).OrDefault(),
		},
		Scope: catalog.Scope(s.Type),
		Page:  s.Page,
	}, nil
}

// resolveGenre matches name case-insensitively against the genre table.
func resolveGenre(name string) (string, error) {
	if name == "" || strings.EqualFold(name, catalog.AllValues) {
		return catalog.AllValues, nil
	}
	for _, genre := range jikan.Genres() {
		if strings.EqualFold(genre, name) {
			return genre, nil
		}
	}
	return "", fmt.Errorf("unknown genre %q (see 'otaku genres')", name)
}

func (s *SearchCmd) Run() error {
	req, err := s.request()
	if err != nil {
		return err
	}

	ctx, stop := commandContext()
	defer stop()

	slog.Debug("Searching", "query", req.Filters.Query, "scope", req.Scope, "page", req.Page)
	page, err := newCoordinator().Search(ctx, req)
	if err != nil {
		return fmt.Errorf("search cancelled: %w", err)
	}
	if len(page.Unavailable) > 0 {
		slog.Warn("Some catalogs could not be reached, results are partial", "unavailable", kindList(page.Unavailable))
	}

	result := searchResult{Request: req, Page: page, Stats: stats.ForPage(page)}

	if s.JSONOutput != "" {
		if _, err := fileutil.WriteDataFile(result, s.JSONOutput, config.OverwriteFiles); err != nil {
			return err
		}
	}
	if s.SQLite != "" {
		if err := datastore.ExportToSQLite(s.SQLite, page); err != nil {
			return err
		}
	}

	if s.Format != formatTable {
		return writeStructured(stdout, s.Format, result)
	}
	return writeSearchTable(stdout, result)
}

func writeSearchTable(w io.Writer, result searchResult) error {
	st := result.Stats
	summary := fmt.Sprintf("Page %d of %d · %d results (anime %d, manga %d) · page average %.2f",
		result.Page.CurrentPage, result.Page.LastPage, st.GrandTotal,
		st.Totals[catalog.Anime], st.Totals[catalog.Manga], st.Page.AverageRating)
	if _, err := fmt.Fprintln(w, summaryStyle.Render(summary)); err != nil {
		return err
	}
	if len(result.Page.Unavailable) > 0 {
		warning := "Unavailable: " + kindList(result.Page.Unavailable) + " (results may be incomplete)"
		if _, err := fmt.Fprintln(w, warningStyle.Render(warning)); err != nil {
			return err
		}
	}
	return writeItemsTable(w, result.Page.Items)
}
