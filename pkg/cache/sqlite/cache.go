// Package sqlite memoizes finished sequencing responses in SQLite
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var memoryCaches atomic.Int64

// memoryDSN names a new private in-memory database. It lives as long as the
// Cache that opened it.
func memoryDSN() string {
	return fmt.Sprintf("file:pepseq-%d?mode=memory&cache=shared", memoryCaches.Add(1))
}

// Cache stores encoded responses keyed by endpoint and request key
type Cache struct {
	db      *sql.DB
	getStmt *sql.Stmt
	putStmt *sql.Stmt
	hitStmt *sql.Stmt
}

// Stats summarizes the cache content
type Stats struct {
	Entries int
	Hits    int
}

// NewCache opens (or creates) a cache at dsn. An empty dsn opens a new
// in-memory database not shared with any other Cache.
func NewCache(dsn string) (*Cache, error) {
	if dsn == "" {
		dsn = memoryDSN()
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers and keeps the in-memory
	// database alive.
	db.SetMaxOpenConns(1)

	c := &Cache{db: db}

	if err := c.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := c.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

// createTables creates the cache schema
func (c *Cache) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ResponseTable (
		Endpoint TEXT NOT NULL,
		RequestKey TEXT NOT NULL,
		Body BLOB NOT NULL,
		CreationDate TEXT,
		Hits INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (Endpoint, RequestKey)
	);
	`

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// prepareStatements prepares the lookup and insert statements
func (c *Cache) prepareStatements() error {
	var err error

	c.getStmt, err = c.db.Prepare(`SELECT Body FROM ResponseTable WHERE Endpoint = ? AND RequestKey = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare lookup statement: %w", err)
	}

	c.hitStmt, err = c.db.Prepare(`UPDATE ResponseTable SET Hits = Hits + 1 WHERE Endpoint = ? AND RequestKey = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare hit statement: %w", err)
	}

	c.putStmt, err = c.db.Prepare(`
		INSERT INTO ResponseTable (Endpoint, RequestKey, Body, CreationDate)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (Endpoint, RequestKey) DO UPDATE SET Body = excluded.Body, CreationDate = excluded.CreationDate
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}

	return nil
}

// Get returns the stored body and whether it was found.
func (c *Cache) Get(endpoint, key string) ([]byte, bool, error) {
	var body []byte
	err := c.getStmt.QueryRow(endpoint, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	if _, err := c.hitStmt.Exec(endpoint, key); err != nil {
		return nil, false, fmt.Errorf("failed to count hit: %w", err)
	}
	return body, true, nil
}

// Put stores body, replacing any previous entry for the same key.
func (c *Cache) Put(endpoint, key string, body []byte) error {
	if _, err := c.putStmt.Exec(endpoint, key, body, time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to store %s response: %w", endpoint, err)
	}
	return nil
}

// Stats counts entries and total hits.
func (c *Cache) Stats() (Stats, error) {
	var s Stats
	err := c.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(Hits), 0) FROM ResponseTable`).Scan(&s.Entries, &s.Hits)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return s, nil
}

// Close closes the prepared statements and the database
func (c *Cache) Close() error {
	for _, stmt := range []*sql.Stmt{c.getStmt, c.putStmt, c.hitStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
