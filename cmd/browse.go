package cmd

import (
	"fmt"
	"io"

	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/config"
	"github.com/lepinkainen/otaku/internal/federate"
	"github.com/lepinkainen/otaku/internal/fileutil"
	"github.com/lepinkainen/otaku/internal/stats"
)

// BrowseCmd represents the browse command
type BrowseCmd struct {
	Format     string `short:"f" help:"Output format (table, json, yaml)" enum:"table,json,yaml" default:"table"`
	JSONOutput string `help:"Also write the sections to this file (.yaml/.yml for YAML)"`
}

// browseResult is the structured form of the curated sections.
type browseResult struct {
	Sections federate.Curated `json:"sections" yaml:"sections"`
	Stats    stats.Stats      `json:"stats" yaml:"stats"`
}

func (b *BrowseCmd) Run() error {
	ctx, stop := commandContext()
	defer stop()

	curated, err := newCoordinator().Curated(ctx)
	if err != nil {
		return fmt.Errorf("browse cancelled: %w", err)
	}
	result := browseResult{Sections: curated, Stats: stats.Compute(curated.All())}

	if b.JSONOutput != "" {
		if _, err := fileutil.WriteDataFile(result, b.JSONOutput, config.OverwriteFiles); err != nil {
			return err
		}
	}

	if b.Format != formatTable {
		return writeStructured(stdout, b.Format, result)
	}
	return writeBrowseTable(stdout, result)
}

func writeBrowseTable(w io.Writer, result browseResult) error {
	c := result.Sections
	sections := []struct {
		title string
		items []catalog.Item
	}{
		{"Top Anime", c.TopAnime},
		{"Trending Now", c.Trending},
		{c.SeasonLabel, c.Seasonal},
		{"Top Manga", c.TopManga},
	}

	for _, section := range sections {
		if _, err := fmt.Fprintln(w, sectionStyle.Render(section.title)); err != nil {
			return err
		}
		if err := writeItemsTable(w, section.items); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	st := result.Stats
	summary := fmt.Sprintf("%d titles · anime %d · manga %d · average score %.2f",
		st.Count, st.ByKind[catalog.Anime], st.ByKind[catalog.Manga], st.AverageRating)
	_, err := fmt.Fprintln(w, summaryStyle.Render(summary))
	return err
}
