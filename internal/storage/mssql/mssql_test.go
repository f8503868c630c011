package mssql

import (
	"strings"
	"testing"

	"mediaload/internal/storage"
)

func TestBackendIsRegistered(t *testing.T) {
	t.Parallel()

	if !storage.Registered("mssql") {
		t.Fatal("mssql backend not registered")
	}
}

func TestDialectSQLForms(t *testing.T) {
	t.Parallel()

	d := Dialect{}
	if got := d.QuoteIdent("a]b"); got != "[a]]b]" {
		t.Errorf("QuoteIdent: got %s", got)
	}
	if got := d.Placeholder(2); got != "@p2" {
		t.Errorf("Placeholder: got %s", got)
	}
}

func TestCreateTableSQLIsGuarded(t *testing.T) {
	t.Parallel()

	d := Dialect{}
	ddl, err := d.CreateTableSQL(storage.TableSpec{
		Name:       "persons",
		PrimaryKey: &storage.PrimaryKeySpec{Name: "id", Auto: true},
		Columns: []storage.ColumnSpec{
			{Name: "name", Type: "text"},
		},
		Uniques: [][]string{{"name"}},
	})
	if err != nil {
		t.Fatalf("ddl: %v", err)
	}
	for _, want := range []string{
		"IF OBJECT_ID(N'persons', N'U') IS NULL",
		"CREATE TABLE [persons]",
		"[id] BIGINT IDENTITY(1,1) PRIMARY KEY,",
		// Bounded length keeps the column usable in a unique index.
		"[name] NVARCHAR(450) NOT NULL",
		"UNIQUE ([name])",
	} {
		if !strings.Contains(ddl, want) {
			t.Errorf("ddl missing %q:\n%s", want, ddl)
		}
	}
}

func TestWholeCatalogRenders(t *testing.T) {
	t.Parallel()

	d := Dialect{}
	for _, spec := range storage.Catalog() {
		ddl, err := d.CreateTableSQL(spec)
		if err != nil {
			t.Errorf("%s: %v", spec.Name, err)
			continue
		}
		if strings.Contains(ddl, "NVARCHAR(MAX)") {
			t.Errorf("%s: unbounded text column breaks unique indexes:\n%s", spec.Name, ddl)
		}
	}
}
