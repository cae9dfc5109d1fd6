// Package store owns the database handle for the inventory collections.
// A Store is constructed once at startup, migrated, passed to each entity
// service, and closed at shutdown. Postgres is used when the DSN says so;
// anything else is treated as a SQLite path, which keeps development and
// tests self-contained.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavor used for schema and placeholders.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// Store is the shared record store handle.
type Store struct {
	DB      *sql.DB
	dialect Dialect
}

// Open connects to the database named by dsn and pings it. DSNs starting
// with postgres:// or postgresql:// use the pgx driver; everything else is
// a SQLite database path (":memory:" works for tests).
func Open(dsn string) (*Store, error) {
	dialect := SQLite
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialect = Postgres
		driver = "pgx"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if dialect == SQLite {
		// One connection serializes writes and keeps :memory: databases
		// from being one-per-connection.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Store{DB: db, dialect: dialect}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// Dialect reports the SQL flavor the store was opened with.
func (s *Store) Dialect() Dialect { return s.dialect }

// Rebind converts ?-style placeholders to the $n form Postgres expects.
// Queries in this repository are written with ? throughout.
func (s *Store) Rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Now produces the timestamp written to created_at/updated_at columns.
// Timestamps are stored as RFC 3339 text in both dialects so records scan
// identically everywhere.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
