// Package storage provides the database backends for the catalog loader.
//
// Backends register themselves under a kind ("sqlite", "postgres", "mssql")
// and are selected by config. All backends speak database/sql; the Dialect
// interface carries the per-engine SQL differences (identifier quoting,
// placeholder style, generated-id retrieval, DDL type names).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// Config is the minimal configuration needed to open a Store.
type Config struct {
	Kind string
	DSN  string
}

// Dialect captures the per-engine SQL surface the loader needs.
//
// IMPORTANT: This interface is intentionally minimal and focused on what the
// natural-key resolver and the schema bootstrap need. Each backend implements
// these semantics in its own idiomatic way (RETURNING on Postgres,
// last_insert_rowid on SQLite, OUTPUT INSERTED on SQL Server).
type Dialect interface {
	// Name returns the backend kind ("sqlite", "postgres", "mssql").
	Name() string

	// QuoteIdent quotes a column or table identifier.
	QuoteIdent(ident string) string

	// Placeholder returns the n-th (1-based) bind placeholder.
	Placeholder(n int) string

	// CreateTableSQL renders idempotent DDL (create-if-absent) for one table.
	CreateTableSQL(t TableSpec) (string, error)

	// InsertReturningID inserts one row and returns the generated id.
	InsertReturningID(ctx context.Context, tx *sql.Tx, table string, columns []string, args []any) (int64, error)
}

// Store is an open database handle paired with its dialect.
type Store struct {
	DB      *sql.DB
	dialect Dialect
}

// NewStore pairs an open handle with its dialect. Backend factories call
// this after a successful ping.
func NewStore(db *sql.DB, d Dialect) *Store {
	return &Store{DB: db, dialect: d}
}

func (s *Store) Dialect() Dialect { return s.dialect }

func (s *Store) Close() { _ = s.DB.Close() }

// Ping validates connectivity. Callers own any retry policy.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// EnsureSchema creates every catalog table that does not exist yet.
// It never alters existing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, t := range Catalog() {
		ddl, err := s.dialect.CreateTableSQL(t)
		if err != nil {
			return err
		}
		if _, err := s.DB.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}
	return nil
}

// ---- backend factories ----

type factory func(ctx context.Context, cfg Config) (*Store, error)

var (
	factoryMu sync.RWMutex
	factories = map[string]factory{}
)

// Register registers a backend under a kind. Called from init() in each
// backend package. Registering the same kind twice panics; this is
// intentional to fail fast on ambiguous backend selection.
func Register(kind string, f factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()

	if kind == "" {
		panic("storage: Register called with empty kind")
	}
	if f == nil {
		panic("storage: Register called with nil factory")
	}
	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("storage: factory already registered for kind=%q", kind))
	}

	factories[kind] = f
}

// Registered reports whether a backend factory exists for kind.
func Registered(kind string) bool {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	_, ok := factories[kind]
	return ok
}

// Open constructs a Store using the registered backend factory.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Kind == "" {
		return nil, fmt.Errorf("storage: missing kind")
	}

	factoryMu.RLock()
	f := factories[cfg.Kind]
	factoryMu.RUnlock()

	if f == nil {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}
