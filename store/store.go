package store

import (
	"bufio"
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"

	"github.com/arvados/sparql-client/rdf"
)

//go:embed schema.sql
var schemaSQL string

// Store is a SQLite-backed triple store.
// Uses WAL mode so reads can proceed during writes.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path and applies
// pragmas and the schema. Idempotent; safe to call on an existing store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries. Prefer the Store
// methods when one fits.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Insert adds ground triples. Patterns containing variables are
// rejected. Duplicate triples are ignored.
func (s *Store) Insert(ctx context.Context, triples ...rdf.Pattern) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO triples (s, p, o) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range triples {
		if !t.IsGround() {
			return fmt.Errorf("insert: triple %s contains variables", t)
		}
		if _, err := stmt.ExecContext(ctx, t.S.String(), t.P.String(), t.O.String()); err != nil {
			return fmt.Errorf("insert %s: %w", t, err)
		}
	}

	return tx.Commit()
}

// Load reads N-Triples statements from r and inserts them, returning the
// number of statements read. Blank lines and comments are skipped.
func (s *Store) Load(ctx context.Context, r io.Reader) (int, error) {
	var (
		triples []rdf.Pattern
		lineNo  int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		triple, ok, err := rdf.ParseTriple(scanner.Text())
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if ok {
			triples = append(triples, triple)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}

	if err := s.Insert(ctx, triples...); err != nil {
		return 0, err
	}
	return len(triples), nil
}

// Count returns the number of stored triples.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM triples").Scan(&n); err != nil {
		return 0, fmt.Errorf("count triples: %w", err)
	}
	return n, nil
}
