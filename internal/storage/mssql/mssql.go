// Package mssql implements the storage backend for Microsoft SQL Server.
//
// Differences that matter here:
//   - No CREATE TABLE IF NOT EXISTS; DDL is guarded with OBJECT_ID.
//   - Natural-key text columns use NVARCHAR(450) rather than NVARCHAR(MAX)
//     so they stay indexable by the UNIQUE constraints.
//   - Generated ids come back via OUTPUT INSERTED.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"mediaload/internal/storage"
)

func init() {
	storage.Register("mssql", New)
}

func New(ctx context.Context, cfg storage.Config) (*storage.Store, error) {
	db, err := sql.Open("sqlserver", cfg.DSN)
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

func (Dialect) Name() string { return "mssql" }

func (Dialect) QuoteIdent(ident string) string {
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
}

func (Dialect) Placeholder(n int) string { return fmt.Sprintf("@p%d", n) }

func (d Dialect) CreateTableSQL(t storage.TableSpec) (string, error) {
	body, err := storage.RenderTableBody(t, storage.DDLProfile{
		Quote:   d.QuoteIdent,
		TypeFor: typeFor,
		AutoPK:  "BIGINT IDENTITY(1,1) PRIMARY KEY",
		PlainPK: "BIGINT PRIMARY KEY",
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nCREATE TABLE %s (\n  %s\n);",
		t.Name, d.QuoteIdent(t.Name), body,
	), nil
}

func typeFor(portable string) (string, error) {
	switch portable {
	case "text":
		return "NVARCHAR(450)", nil
	case "integer":
		return "INT", nil
	case "bigint":
		return "BIGINT", nil
	case "real":
		return "FLOAT", nil
	case "date":
		return "DATE", nil
	case "boolean":
		return "BIT", nil
	}
	return "", fmt.Errorf("mssql: unsupported column type %q", portable)
}

func (d Dialect) InsertReturningID(ctx context.Context, tx *sql.Tx, table string, columns []string, args []any) (int64, error) {
	cols := make([]string, 0, len(columns))
	ph := make([]string, 0, len(columns))
	for i, c := range columns {
		cols = append(cols, d.QuoteIdent(c))
		ph = append(ph, d.Placeholder(i+1))
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (%s) OUTPUT INSERTED.id VALUES (%s)",
		d.QuoteIdent(table), strings.Join(cols, ", "), strings.Join(ph, ", "),
	)

	var id int64
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
