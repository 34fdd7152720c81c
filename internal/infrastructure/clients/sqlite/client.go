package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schemaSQL string

// Client represents the local SQLite dataset store. The dataset is loaded
// once by the importer and read-only afterwards, so a single connection is
// enough.
type Client struct {
	db   *sql.DB
	path string
}

// NewClient opens (or creates) the doctors database at path and applies the
// schema. Use ":memory:" for an ephemeral store in tests.
func NewClient(path string) (*Client, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open doctors database: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Client{db: db, path: path}, nil
}

// DB returns the underlying database connection
func (c *Client) DB() *sql.DB {
	return c.db
}

// Path returns the database file path
func (c *Client) Path() string {
	return c.path
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the connection to the database
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
