package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoLeadsTable means a file opened as a snapshot is a SQLite database but
// was not written by this program.
var ErrNoLeadsTable = errors.New("database has no leads table")

// DB is one SQLite snapshot file.
type DB struct {
	Pool     *sql.DB
	Path     string
	ReadOnly bool
}

// Open opens path for writing, creating the file if needed. Call Migrate
// before writing leads.
func Open(path string) (*DB, error) {
	return open(path, false)
}

// OpenSnapshot opens an existing snapshot read-only and checks that it holds
// a leads table.
func OpenSnapshot(ctx context.Context, path string) (*DB, error) {
	db, err := open(path, true)
	if err != nil {
		return nil, err
	}
	ok, err := hasLeadsTable(ctx, db.Pool)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	if !ok {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNoLeadsTable)
	}
	return db, nil
}

func open(path string, readOnly bool) (*DB, error) {
	// modernc passes the URI to sqlite; _pragma is applied per connection.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	if readOnly {
		dsn += "&mode=ro"
	}

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// snapshots have a single writer and are read once per process
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return &DB{Pool: pool, Path: path, ReadOnly: readOnly}, nil
}

func hasLeadsTable(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'leads';`,
	).Scan(&n)
	return n > 0, err
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}
