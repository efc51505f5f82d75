package datastore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/otaku/internal/catalog"
)

func TestSQLiteStore_CreateTableAndUpsert(t *testing.T) {
	store := NewSQLiteStore("file::memory:?cache=shared")
	require.NoError(t, store.Connect())
	defer func() { _ = store.Close() }()

	schema := `CREATE TABLE IF NOT EXISTS test_table (
		id INTEGER PRIMARY KEY,
		name TEXT,
		value INTEGER
	)`
	require.NoError(t, store.CreateTable(schema))

	columns := []string{"id", "name", "value"}
	records := []map[string]any{
		{"id": 1, "name": "foo", "value": 42},
		{"id": 2, "name": "bar", "value": 99},
	}
	require.NoError(t, store.Upsert("test_table", columns, records))
	// same key again replaces
	require.NoError(t, store.Upsert("test_table", columns, []map[string]any{{"id": 1, "name": "baz", "value": 1}}))

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM test_table").Scan(&count))
	assert.Equal(t, 2, count)

	var name string
	require.NoError(t, store.db.QueryRow("SELECT name FROM test_table WHERE id = 1").Scan(&name))
	assert.Equal(t, "baz", name)
}

func TestSQLiteStore_NotConnected(t *testing.T) {
	store := NewSQLiteStore("unused.db")

	assert.Error(t, store.CreateTable("CREATE TABLE x (id INTEGER)"))
	assert.Error(t, store.Upsert("x", []string{"id"}, []map[string]any{{"id": 1}}))
	assert.NoError(t, store.Upsert("x", []string{"id"}, nil))
	assert.NoError(t, store.Close())
}

func TestExportToSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "otaku.db")

	frieren := catalog.NewItem(catalog.Anime, 52991, "Sousou no Frieren")
	frieren.Genres = []string{"Adventure", "Drama", "Fantasy"}
	frieren.Status = catalog.StatusCompleted
	frieren.Rating = 9.3
	frieren.Year = 2023
	berserk := catalog.NewItem(catalog.Manga, 2, "Berserk")

	page := catalog.VirtualPage{
		Items:       []catalog.Item{frieren, berserk},
		CurrentPage: 3,
	}
	require.NoError(t, ExportToSQLite(dbPath, page))
	// exporting the same page twice keeps one row per item
	require.NoError(t, ExportToSQLite(dbPath, page))

	store := NewSQLiteStore(dbPath)
	require.NoError(t, store.Connect())
	defer func() { _ = store.Close() }()

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM catalog_items").Scan(&count))
	assert.Equal(t, 2, count)

	var (
		title, kind, genres, status string
		rating                      float64
		year, pageNum               int
	)
	row := store.db.QueryRow("SELECT title, kind, genres, status, rating, year, page FROM catalog_items WHERE id = ?", "anime-52991")
	require.NoError(t, row.Scan(&title, &kind, &genres, &status, &rating, &year, &pageNum))
	assert.Equal(t, "Sousou no Frieren", title)
	assert.Equal(t, "anime", kind)
	assert.Equal(t, "Adventure, Drama, Fantasy", genres)
	assert.Equal(t, "completed", status)
	assert.InDelta(t, 9.3, rating, 0.0001)
	assert.Equal(t, 2023, year)
	assert.Equal(t, 3, pageNum)

	var unknownYear any
	require.NoError(t, store.db.QueryRow("SELECT year FROM catalog_items WHERE id = ?", "manga-2").Scan(&unknownYear))
	assert.Nil(t, unknownYear)
}

func TestCatalogRecord(t *testing.T) {
	item := catalog.NewItem(catalog.Manga, 13, "One Piece")
	record := CatalogRecord(item, 1)

	assert.Equal(t, "manga-13", record["id"])
	assert.Equal(t, "", record["genres"])
	assert.Equal(t, catalog.NoDescription, record["description"])
	assert.Nil(t, record["year"])
	assert.Len(t, record, len(catalogColumns))
}
