// Package sqlite implements the storage backend for SQLite via
// modernc.org/sqlite (no cgo).
//
// Notes vs the other backends:
//   - SQLite has no native DATE or BOOLEAN types. Dates are stored as
//     YYYY-MM-DD TEXT and booleans with INTEGER affinity; both round-trip
//     cleanly through database/sql.
//   - "INTEGER PRIMARY KEY" is special: it aliases the rowid, which is what
//     makes LastInsertId reliable here.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"mediaload/internal/storage"
)

func init() {
	storage.Register("sqlite", New)
}

func New(ctx context.Context, cfg storage.Config) (*storage.Store, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return storage.NewStore(db, Dialect{}), nil
}

type Dialect struct{}

func (Dialect) Name() string { return "sqlite" }

func (Dialect) QuoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (Dialect) Placeholder(int) string { return "?" }

func (d Dialect) CreateTableSQL(t storage.TableSpec) (string, error) {
	body, err := storage.RenderTableBody(t, storage.DDLProfile{
		Quote:   d.QuoteIdent,
		TypeFor: typeFor,
		AutoPK:  "INTEGER PRIMARY KEY AUTOINCREMENT",
		PlainPK: "INTEGER PRIMARY KEY",
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);", d.QuoteIdent(t.Name), body), nil
}

func typeFor(portable string) (string, error) {
	switch portable {
	case "text", "date":
		return "TEXT", nil
	case "integer", "bigint", "boolean":
		return "INTEGER", nil
	case "real":
		return "REAL", nil
	}
	return "", fmt.Errorf("sqlite: unsupported column type %q", portable)
}

func (d Dialect) InsertReturningID(ctx context.Context, tx *sql.Tx, table string, columns []string, args []any) (int64, error) {
	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, d.QuoteIdent(c))
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(columns)), ",")

	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table), strings.Join(cols, ", "), ph,
	)
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
