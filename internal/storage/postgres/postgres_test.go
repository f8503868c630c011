package postgres

import (
	"strings"
	"testing"

	"mediaload/internal/storage"
)

func TestBackendIsRegistered(t *testing.T) {
	t.Parallel()

	if !storage.Registered("postgres") {
		t.Fatal("postgres backend not registered")
	}
}

func TestDialectSQLForms(t *testing.T) {
	t.Parallel()

	d := Dialect{}
	if got := d.QuoteIdent(`a"b`); got != `"a""b"` {
		t.Errorf("QuoteIdent: got %s", got)
	}
	if got := d.Placeholder(3); got != "$3" {
		t.Errorf("Placeholder: got %s", got)
	}
}

func TestCreateTableSQL(t *testing.T) {
	t.Parallel()

	d := Dialect{}
	ddl, err := d.CreateTableSQL(storage.TableSpec{
		Name:       "shops",
		PrimaryKey: &storage.PrimaryKeySpec{Name: "id", Auto: true},
		Columns: []storage.ColumnSpec{
			{Name: "name", Type: "text"},
			{Name: "address_id", Type: "bigint", References: "addresses(id)"},
		},
		Uniques: [][]string{{"name"}},
	})
	if err != nil {
		t.Fatalf("ddl: %v", err)
	}
	for _, want := range []string{
		`CREATE TABLE IF NOT EXISTS "shops"`,
		`"id" BIGSERIAL PRIMARY KEY,`,
		`"address_id" BIGINT NOT NULL REFERENCES addresses(id)`,
		`UNIQUE ("name")`,
	} {
		if !strings.Contains(ddl, want) {
			t.Errorf("ddl missing %q:\n%s", want, ddl)
		}
	}
}

func TestCreateTableSQLSpecializationPK(t *testing.T) {
	t.Parallel()

	d := Dialect{}
	ddl, err := d.CreateTableSQL(storage.TableSpec{
		Name:       "books",
		PrimaryKey: &storage.PrimaryKeySpec{Name: "id", Auto: false},
		Columns: []storage.ColumnSpec{
			{Name: "isbn", Type: "text"},
			{Name: "date_published", Type: "date"},
		},
	})
	if err != nil {
		t.Fatalf("ddl: %v", err)
	}
	if !strings.Contains(ddl, `"id" BIGINT PRIMARY KEY,`) {
		t.Errorf("plain pk clause missing:\n%s", ddl)
	}
	if strings.Contains(ddl, "BIGSERIAL") {
		t.Errorf("shared-id table rendered a generated pk:\n%s", ddl)
	}
}

func TestWholeCatalogRenders(t *testing.T) {
	t.Parallel()

	d := Dialect{}
	for _, spec := range storage.Catalog() {
		if _, err := d.CreateTableSQL(spec); err != nil {
			t.Errorf("%s: %v", spec.Name, err)
		}
	}
}
