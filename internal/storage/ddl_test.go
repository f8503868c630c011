package storage

import (
	"strings"
	"testing"
)

func testProfile() DDLProfile {
	return DDLProfile{
		Quote:   func(s string) string { return `"` + s + `"` },
		TypeFor: func(portable string) (string, error) { return strings.ToUpper(portable), nil },
		AutoPK:  "INTEGER PRIMARY KEY AUTOINCREMENT",
		PlainPK: "INTEGER PRIMARY KEY",
	}
}

func TestRenderTableBody(t *testing.T) {
	t.Parallel()

	spec := TableSpec{
		Name:       "shops",
		PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
		Columns: []ColumnSpec{
			{Name: "name", Type: "text"},
			{Name: "address_id", Type: "bigint", References: "addresses(id)"},
		},
		Uniques: [][]string{{"name"}},
	}

	body, err := RenderTableBody(spec, testProfile())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `"id" INTEGER PRIMARY KEY AUTOINCREMENT,
  "name" TEXT NOT NULL,
  "address_id" BIGINT NOT NULL REFERENCES addresses(id),
  UNIQUE ("name")`
	if body != want {
		t.Errorf("body:\n%s\nwant:\n%s", body, want)
	}
}

func TestRenderTableBodyPlainPK(t *testing.T) {
	t.Parallel()

	spec := TableSpec{
		Name:       "cds",
		PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: false},
		Columns: []ColumnSpec{
			{Name: "label", Type: "text"},
		},
	}

	body, err := RenderTableBody(spec, testProfile())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(body, `"id" INTEGER PRIMARY KEY,`) {
		t.Errorf("plain pk clause missing:\n%s", body)
	}
	if strings.Contains(body, "AUTOINCREMENT") {
		t.Errorf("plain pk rendered as generated:\n%s", body)
	}
}

func TestRenderTableBodyNullable(t *testing.T) {
	t.Parallel()

	spec := TableSpec{
		Name: "shop_product",
		Columns: []ColumnSpec{
			{Name: "price", Type: "real", Nullable: true},
			{Name: "state", Type: "text"},
		},
	}

	body, err := RenderTableBody(spec, testProfile())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, `"price" REAL NOT NULL`) {
		t.Errorf("nullable column rendered NOT NULL:\n%s", body)
	}
	if !strings.Contains(body, `"state" TEXT NOT NULL`) {
		t.Errorf("required column missing NOT NULL:\n%s", body)
	}
}

func TestRenderTableBodyRejectsEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := RenderTableBody(TableSpec{Name: "  "}, testProfile()); err == nil {
		t.Fatal("expected an error for an empty table name")
	}
}

func TestCatalogCreationOrder(t *testing.T) {
	t.Parallel()

	tables := Catalog()
	seen := make(map[string]bool, len(tables))
	for _, tb := range tables {
		if seen[tb.Name] {
			t.Errorf("table %s listed twice", tb.Name)
		}
		for _, c := range tb.Columns {
			if c.References == "" {
				continue
			}
			ref := c.References[:strings.IndexByte(c.References, '(')]
			// Self-references (categories.parent_id) are fine mid-create.
			if ref != tb.Name && !seen[ref] {
				t.Errorf("%s.%s references %s before it is created", tb.Name, c.Name, ref)
			}
		}
		seen[tb.Name] = true
	}
}

func TestCatalogUniqueColumnsExist(t *testing.T) {
	t.Parallel()

	for _, tb := range Catalog() {
		cols := make(map[string]bool, len(tb.Columns)+1)
		if tb.PrimaryKey != nil {
			cols[tb.PrimaryKey.Name] = true
		}
		for _, c := range tb.Columns {
			cols[c.Name] = true
		}
		for _, u := range tb.Uniques {
			for _, c := range u {
				if !cols[c] {
					t.Errorf("%s: unique constraint names unknown column %s", tb.Name, c)
				}
			}
		}
	}
}
