// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects driver-specific SQL.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB is a connection pool plus the dialect it speaks.
// Queries are written with $N placeholders and rebound per dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects and pings the database.
func Open(ctx context.Context, dialect Dialect, url string) (*DB, error) {
	var driver string
	switch dialect {
	case Postgres:
		driver = "postgres"
	case SQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; in-memory databases also live on one connection
	if dialect == SQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: conn, Dialect: dialect}, nil
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Rebind converts $N placeholders to the dialect's native form.
// SQLite reads ?N as the same numbered parameter.
func (d *DB) Rebind(query string) string {
	if d.Dialect == SQLite {
		return placeholder.ReplaceAllString(query, "?$1")
	}
	return query
}
