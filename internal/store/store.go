// Package store keeps local bookkeeping in SQLite: which PDFs have been
// downloaded and the user's saved searches.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Download records one fetched PDF.
type Download struct {
	Bibcode   string    `json:"bibcode"`
	Source    string    `json:"source"`
	Path      string    `json:"path"`
	FetchedAt time.Time `json:"fetched_at"`
}

// SavedSearch is a named query the user wants to rerun.
type SavedSearch struct {
	Name      string    `json:"name"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// Open opens or creates the SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS downloads (
			bibcode TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			path TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS saved_searches (
			name TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// RecordDownload saves or updates the download record for a bibcode.
func (d *DB) RecordDownload(bibcode, source, path string) error {
	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO downloads (bibcode, source, path, fetched_at)
		VALUES (?, ?, ?, ?)
	`, bibcode, source, path, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("recording download %s: %w", bibcode, err)
	}
	return nil
}

// Download retrieves the download record for a bibcode, or nil when the
// PDF has never been fetched.
func (d *DB) Download(bibcode string) (*Download, error) {
	var dl Download
	var fetchedAt int64
	err := d.db.QueryRow(`
		SELECT bibcode, source, path, fetched_at
		FROM downloads
		WHERE bibcode = ?
	`, bibcode).Scan(&dl.Bibcode, &dl.Source, &dl.Path, &fetchedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	dl.FetchedAt = time.Unix(fetchedAt, 0)
	return &dl, nil
}

// Downloads returns all download records, newest first.
func (d *DB) Downloads() ([]Download, error) {
	rows, err := d.db.Query(`
		SELECT bibcode, source, path, fetched_at
		FROM downloads
		ORDER BY fetched_at DESC, bibcode
	`)
	if err != nil {
		return nil, fmt.Errorf("listing downloads: %w", err)
	}
	defer rows.Close()

	var dls []Download
	for rows.Next() {
		var dl Download
		var fetchedAt int64
		if err := rows.Scan(&dl.Bibcode, &dl.Source, &dl.Path, &fetchedAt); err != nil {
			return nil, err
		}
		dl.FetchedAt = time.Unix(fetchedAt, 0)
		dls = append(dls, dl)
	}
	return dls, rows.Err()
}

// SaveSearch stores a named query, replacing any previous query saved
// under the same name.
func (d *DB) SaveSearch(name, query string) error {
	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO saved_searches (name, query, created_at)
		VALUES (?, ?, ?)
	`, name, query, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("saving search %s: %w", name, err)
	}
	return nil
}

// SavedSearch retrieves one saved search by name, or nil when unknown.
func (d *DB) SavedSearch(name string) (*SavedSearch, error) {
	var s SavedSearch
	var createdAt int64
	err := d.db.QueryRow(`
		SELECT name, query, created_at
		FROM saved_searches
		WHERE name = ?
	`, name).Scan(&s.Name, &s.Query, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.CreatedAt = time.Unix(createdAt, 0)
	return &s, nil
}

// SavedSearches returns all saved searches ordered by name.
func (d *DB) SavedSearches() ([]SavedSearch, error) {
	rows, err := d.db.Query(`
		SELECT name, query, created_at
		FROM saved_searches
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing saved searches: %w", err)
	}
	defer rows.Close()

	var searches []SavedSearch
	for rows.Next() {
		var s SavedSearch
		var createdAt int64
		if err := rows.Scan(&s.Name, &s.Query, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt = time.Unix(createdAt, 0)
		searches = append(searches, s)
	}
	return searches, rows.Err()
}

// DeleteSearch removes a saved search. Deleting an unknown name is not an
// error.
func (d *DB) DeleteSearch(name string) error {
	_, err := d.db.Exec("DELETE FROM saved_searches WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting search %s: %w", name, err)
	}
	return nil
}
