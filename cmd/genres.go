package cmd

import (
	"fmt"

	"github.com/lepinkainen/otaku/internal/jikan"
)

// GenresCmd represents the genres command
type GenresCmd struct {
	Format string `short:"f" help:"Output format (table, json, yaml)" enum:"table,json,yaml" default:"table"`
}

type genreEntry struct {
	Name string `json:"name" yaml:"name"`
	ID   int    `json:"mal_id" yaml:"mal_id"`
}

func (g *GenresCmd) Run() error {
	names := jikan.Genres()
	genres := make([]genreEntry, 0, len(names))
	for _, name := range names {
		id, _ := jikan.GenreID(name)
		genres = append(genres, genreEntry{Name: name, ID: id})
	}

	if g.Format != formatTable {
		return writeStructured(stdout, g.Format, genres)
	}
	for _, genre := range genres {
		if _, err := fmt.Fprintf(stdout, "%-14s %d\n", genre.Name, genre.ID); err != nil {
			return err
		}
	}
	return nil
}
