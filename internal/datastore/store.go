// Package datastore writes result snapshots to SQLite for browsing with
// tools such as Datasette. Nothing is ever read back by otaku itself.
package datastore

// Store defines the interface for a write-only export sink
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// Upsert inserts records into table, replacing rows with the same key
	Upsert(table string, columns []string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
