// Package postgres implements the storage backend for PostgreSQL using the
// pgx driver through its database/sql adapter, so the loader's single-
// connection resolver works identically across backends.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"mediaload/internal/storage"
)

func init() {
	storage.Register("postgres", New)
}

func New(ctx context.Context, cfg storage.Config) (*storage.Store, error) {
	db, err := sql.Open("pgx", cfg.DSN)
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

func (Dialect) Name() string { return "postgres" }

func (Dialect) QuoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (Dialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (d Dialect) CreateTableSQL(t storage.TableSpec) (string, error) {
	body, err := storage.RenderTableBody(t, storage.DDLProfile{
		Quote:   d.QuoteIdent,
		TypeFor: typeFor,
		AutoPK:  "BIGSERIAL PRIMARY KEY",
		PlainPK: "BIGINT PRIMARY KEY",
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);", d.QuoteIdent(t.Name), body), nil
}

func typeFor(portable string) (string, error) {
	switch portable {
	case "text":
		return "TEXT", nil
	case "integer":
		return "INTEGER", nil
	case "bigint":
		return "BIGINT", nil
	case "real":
		return "DOUBLE PRECISION", nil
	case "date":
		return "DATE", nil
	case "boolean":
		return "BOOLEAN", nil
	}
	return "", fmt.Errorf("postgres: unsupported column type %q", portable)
}

// InsertReturningID uses INSERT ... RETURNING; LastInsertId is not supported
// by the pgx stdlib driver.
func (d Dialect) InsertReturningID(ctx context.Context, tx *sql.Tx, table string, columns []string, args []any) (int64, error) {
	cols := make([]string, 0, len(columns))
	ph := make([]string, 0, len(columns))
	for i, c := range columns {
		cols = append(cols, d.QuoteIdent(c))
		ph = append(ph, d.Placeholder(i+1))
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		d.QuoteIdent(table), strings.Join(cols, ", "), strings.Join(ph, ", "),
	)

	var id int64
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
