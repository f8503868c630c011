package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mediaload/internal/storage"
)

// Col is one (column, value) pair. A nil Value means SQL NULL: it renders
// as an IS NULL predicate in lookups and binds NULL in inserts.
type Col struct {
	Name  string
	Value any
}

// PersistenceError tags a database failure with the table it happened on.
// Builders convert these into ledger entries; they never cross the
// orchestrator boundary.
type PersistenceError struct {
	Table string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Resolver implements the get-or-insert primitive over a Dialect. It never
// commits; transaction boundaries belong to the unit of work.
type Resolver struct {
	d storage.Dialect
}

func NewResolver(d storage.Dialect) *Resolver {
	return &Resolver{d: d}
}

// ResolveOrCreate looks up a row by the subset of cols named in keyCols and
// returns its id; when no row matches it inserts all cols and returns the
// generated id. Empty keyCols means insert-only (no pre-check lookup).
func (r *Resolver) ResolveOrCreate(ctx context.Context, tx *sql.Tx, table string, cols []Col, keyCols []string) (int64, error) {
	if len(keyCols) > 0 {
		key := make([]Col, 0, len(keyCols))
		for _, k := range keyCols {
			c, ok := findCol(cols, k)
			if !ok {
				return 0, &PersistenceError{Table: table, Err: fmt.Errorf("natural key column %q not among values", k)}
			}
			key = append(key, c)
		}

		id, found, err := r.LookupID(ctx, tx, table, key)
		if err != nil {
			return 0, err
		}
		if found {
			return id, nil
		}
	}

	return r.InsertReturningID(ctx, tx, table, cols)
}

// LookupID selects the id of the row matching every key pair exactly
// (nil matches NULL, not anything).
func (r *Resolver) LookupID(ctx context.Context, tx *sql.Tx, table string, key []Col) (int64, bool, error) {
	where, args := r.whereClause(key)
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		r.d.QuoteIdent("id"), r.d.QuoteIdent(table), where)

	var id int64
	err := tx.QueryRowContext(ctx, q, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &PersistenceError{Table: table, Err: err}
	}
	return id, true, nil
}

// Exists reports whether a row matching every key pair exists. Used for
// link tables, which have no id to return.
func (r *Resolver) Exists(ctx context.Context, tx *sql.Tx, table string, key []Col) (bool, error) {
	where, args := r.whereClause(key)
	q := fmt.Sprintf("SELECT 1 FROM %s WHERE %s", r.d.QuoteIdent(table), where)

	var one int
	err := tx.QueryRowContext(ctx, q, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &PersistenceError{Table: table, Err: err}
	}
	return true, nil
}

// Insert inserts one row without asking for an id.
func (r *Resolver) Insert(ctx context.Context, tx *sql.Tx, table string, cols []Col) error {
	names := make([]string, 0, len(cols))
	ph := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, c := range cols {
		names = append(names, r.d.QuoteIdent(c.Name))
		ph = append(ph, r.d.Placeholder(i+1))
		args = append(args, c.Value)
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.d.QuoteIdent(table), strings.Join(names, ", "), strings.Join(ph, ", "))

	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return &PersistenceError{Table: table, Err: err}
	}
	return nil
}

// InsertReturningID inserts one row and returns the generated id.
func (r *Resolver) InsertReturningID(ctx context.Context, tx *sql.Tx, table string, cols []Col) (int64, error) {
	names := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
		args = append(args, c.Value)
	}

	id, err := r.d.InsertReturningID(ctx, tx, table, names, args)
	if err != nil {
		return 0, &PersistenceError{Table: table, Err: err}
	}
	return id, nil
}

// whereClause renders "a = $1 AND b IS NULL ..." with placeholder numbers
// counting only bound values.
func (r *Resolver) whereClause(key []Col) (string, []any) {
	parts := make([]string, 0, len(key))
	args := make([]any, 0, len(key))
	n := 0
	for _, c := range key {
		if c.Value == nil {
			parts = append(parts, r.d.QuoteIdent(c.Name)+" IS NULL")
			continue
		}
		n++
		parts = append(parts, fmt.Sprintf("%s = %s", r.d.QuoteIdent(c.Name), r.d.Placeholder(n)))
		args = append(args, c.Value)
	}
	return strings.Join(parts, " AND "), args
}

func findCol(cols []Col, name string) (Col, bool) {
	for _, c := range cols {
		if c.Name == name {
			return c, true
		}
	}
	return Col{}, false
}
