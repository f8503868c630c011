package storage

import (
	"fmt"
	"strings"
)

// DDLProfile carries the engine-specific pieces needed to render a table
// body from a TableSpec. Backends fill one in and wrap the body in their
// own create-if-absent statement form.
type DDLProfile struct {
	// Quote quotes an identifier.
	Quote func(string) string

	// TypeFor maps a portable column type to the engine type name.
	TypeFor func(string) (string, error)

	// AutoPK is the full type+constraint clause for a generated id column.
	AutoPK string

	// PlainPK is the clause for a caller-supplied id column (the
	// specialization tables share the product id).
	PlainPK string
}

// RenderTableBody renders the parenthesized column/constraint list for a
// TableSpec: primary key first, then columns in declared order, then UNIQUE
// constraints.
func RenderTableBody(t TableSpec, p DDLProfile) (string, error) {
	if strings.TrimSpace(t.Name) == "" {
		return "", fmt.Errorf("table name is empty")
	}

	var parts []string

	if t.PrimaryKey != nil {
		clause := p.PlainPK
		if t.PrimaryKey.Auto {
			clause = p.AutoPK
		}
		parts = append(parts, fmt.Sprintf("%s %s", p.Quote(t.PrimaryKey.Name), clause))
	}

	for _, c := range t.Columns {
		typ, err := p.TypeFor(c.Type)
		if err != nil {
			return "", fmt.Errorf("%s.%s: %w", t.Name, c.Name, err)
		}
		col := fmt.Sprintf("%s %s", p.Quote(c.Name), typ)
		if !c.Nullable {
			col += " NOT NULL"
		}
		if c.References != "" {
			col += " REFERENCES " + c.References
		}
		parts = append(parts, col)
	}

	for _, u := range t.Uniques {
		cols := make([]string, 0, len(u))
		for _, c := range u {
			cols = append(cols, p.Quote(c))
		}
		parts = append(parts, fmt.Sprintf("UNIQUE (%s)", strings.Join(cols, ", ")))
	}

	return strings.Join(parts, ",\n  "), nil
}
