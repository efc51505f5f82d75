package datastore

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/otaku/internal/catalog"
)

// CatalogTable is the table search results are exported to.
const CatalogTable = "catalog_items"

// CatalogSchema creates CatalogTable.
const CatalogSchema = `CREATE TABLE IF NOT EXISTS catalog_items (
	id TEXT PRIMARY KEY,
	native_id INTEGER,
	title TEXT,
	kind TEXT,
	genres TEXT,
	status TEXT,
	rating REAL,
	year INTEGER,
	image_url TEXT,
	description TEXT,
	link TEXT,
	page INTEGER
)`

var catalogColumns = []string{
	"id", "native_id", "title", "kind", "genres", "status",
	"rating", "year", "image_url", "description", "link", "page",
}

// CatalogRecord flattens an item into a catalog_items row.
func CatalogRecord(item catalog.Item, page int) map[string]any {
	var year any
	if item.Year > 0 {
		year = item.Year
	}
	return map[string]any{
		"id":          item.ID,
		"native_id":   item.NativeID,
		"title":       item.Title,
		"kind":        string(item.Kind),
		"genres":      strings.Join(item.Genres, ", "),
		"status":      string(item.Status),
		"rating":      item.Rating,
		"year":        year,
		"image_url":   item.ImageURL,
		"description": item.Description,
		"link":        item.ExternalLink,
		"page":        page,
	}
}

// ExportPage writes the items of one virtual page to store.
func ExportPage(store Store, page catalog.VirtualPage) error {
	if err := store.CreateTable(CatalogSchema); err != nil {
		return err
	}

	records := make([]map[string]any, 0, len(page.Items))
	for _, item := range page.Items {
		records = append(records, CatalogRecord(item, page.CurrentPage))
	}
	if err := store.Upsert(CatalogTable, catalogColumns, records); err != nil {
		return fmt.Errorf("failed to export page %d: %w", page.CurrentPage, err)
	}

	slog.Info("Exported results", "table", CatalogTable, "items", len(records), "page", page.CurrentPage)
	return nil
}

// ExportToSQLite opens dbPath, writes page and closes the database.
func ExportToSQLite(dbPath string, page catalog.VirtualPage) error {
	store := NewSQLiteStore(dbPath)
	if err := store.Connect(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return ExportPage(store, page)
}
