// Package rendercache persists encoded preview renders keyed by source image
// digest and parameter hash, so unchanged previews are served without
// re-running the pixel pipeline.
package rendercache

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver
)

// Cache is a SQLite-backed store of compressed preview PNGs.
type Cache struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open creates or opens a cache database at the given path and initializes
// the schema.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Cache{db: db, path: path}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS previews (
			source_digest TEXT NOT NULL,
			params_digest TEXT NOT NULL,
			png_data BLOB NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE UNIQUE INDEX IF NOT EXISTS preview_key ON previews (source_digest, params_digest);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Put stores PNG data under (sourceDigest, paramsDigest), replacing any
// previous entry for the same key. The data is gzip-compressed before
// storage.
func (c *Cache) Put(sourceDigest, paramsDigest string, pngData []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(pngData); err != nil {
		return fmt.Errorf("failed to compress preview: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finalize compression: %w", err)
	}

	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO previews (source_digest, params_digest, png_data) VALUES (?, ?, ?)",
		sourceDigest, paramsDigest, buf.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("failed to store preview: %w", err)
	}

	return nil
}

// Get returns the decompressed PNG data for the key, or (nil, false, nil)
// when the entry does not exist.
func (c *Cache) Get(sourceDigest, paramsDigest string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var compressed []byte
	err := c.db.QueryRow(
		"SELECT png_data FROM previews WHERE source_digest=? AND params_digest=?",
		sourceDigest, paramsDigest,
	).Scan(&compressed)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read preview: %w", err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, false, fmt.Errorf("failed to open compressed preview: %w", err)
	}
	defer gz.Close() // nolint:errcheck

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decompress preview: %w", err)
	}

	return data, true, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
