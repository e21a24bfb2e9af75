// Package db indexes accepted artifacts in a relational store. The file on
// disk remains the system of record; the index exists for listing and
// operational queries.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// DBConfig selects the backend. SQLite uses Path (a file or :memory:),
// Postgres uses URL.
type DBConfig struct {
	Type Dialect
	Path string
	URL  string
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

//go:embed migrations/*.sql
var embedMigrations embed.FS

func NewStore(cfg DBConfig) (*Store, error) {
	var dsn string
	switch cfg.Type {
	case DialectSQLite:
		dsn = cfg.Path
	case DialectPostgres:
		dsn = cfg.URL
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", cfg.Type)
	}

	db, err := sql.Open(string(cfg.Type), dsn)
	if err != nil {
		return nil, err
	}

	// A single connection keeps :memory: databases coherent across the pool.
	if cfg.Type == DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Store{db: db, dialect: cfg.Type}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(s.dialect)); err != nil {
		return err
	}
	return goose.Up(s.db, "migrations")
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres. Queries are written in
// sqlite style and rebound once per call.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
