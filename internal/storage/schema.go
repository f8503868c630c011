package storage

// TableSpec describes one catalog table in engine-neutral terms.
// Column types use the portable names "text", "integer", "bigint", "real",
// "date" and "boolean"; each dialect maps them to its own type names.
type TableSpec struct {
	Name string

	// PrimaryKey is the synthetic id column, if the table has one.
	PrimaryKey *PrimaryKeySpec

	Columns []ColumnSpec

	// Uniques lists the unique column sets backing natural keys and
	// composite link keys.
	Uniques [][]string
}

type PrimaryKeySpec struct {
	Name string

	// Auto means the engine generates the value. Specialization tables
	// (cds, dvds, books) share the product id and set Auto=false.
	Auto bool
}

type ColumnSpec struct {
	Name     string
	Type     string
	Nullable bool

	// References names "table(column)" for a foreign key, or is empty.
	References string
}

// Catalog returns the full table set of the media-store schema, in creation
// order (referenced tables first).
func Catalog() []TableSpec {
	return []TableSpec{
		{
			Name:       "addresses",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
			Columns: []ColumnSpec{
				{Name: "street", Type: "text"},
				{Name: "zip", Type: "text"},
			},
		},
		{
			Name:       "shops",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
			Columns: []ColumnSpec{
				{Name: "name", Type: "text"},
				{Name: "address_id", Type: "bigint", References: "addresses(id)"},
			},
			Uniques: [][]string{{"name"}},
		},
		{
			Name:       "products",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
			Columns: []ColumnSpec{
				{Name: "asin", Type: "text"},
				{Name: "name", Type: "text"},
				{Name: "image", Type: "text", Nullable: true},
				{Name: "salesrank", Type: "integer", Nullable: true},
			},
			Uniques: [][]string{{"asin"}},
		},
		{
			Name:       "publishers",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
			Columns: []ColumnSpec{
				{Name: "name", Type: "text"},
			},
			Uniques: [][]string{{"name"}},
		},
		{
			Name:       "persons",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
			Columns: []ColumnSpec{
				{Name: "name", Type: "text"},
			},
			Uniques: [][]string{{"name"}},
		},
		{
			// 1:1 with products; shares the product id.
			Name:       "cds",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: false},
			Columns: []ColumnSpec{
				{Name: "label", Type: "text"},
				{Name: "date_published", Type: "date"},
			},
		},
		{
			Name:       "tracks",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
			Columns: []ColumnSpec{
				{Name: "cd_id", Type: "bigint", References: "cds(id)"},
				{Name: "title", Type: "text"},
			},
			// No unique constraint: duplicate track titles are data, not errors.
		},
		{
			Name:       "dvds",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: false},
			Columns: []ColumnSpec{
				{Name: "format", Type: "text"},
				{Name: "duration", Type: "integer"},
				{Name: "region_code", Type: "text"},
			},
		},
		{
			Name:       "books",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: false},
			Columns: []ColumnSpec{
				{Name: "isbn", Type: "text"},
				{Name: "n_pages", Type: "integer"},
				{Name: "date_published", Type: "date"},
				{Name: "publisher_id", Type: "bigint", References: "publishers(id)"},
			},
		},
		{
			Name: "person_product",
			Columns: []ColumnSpec{
				{Name: "person_id", Type: "bigint", References: "persons(id)"},
				{Name: "product_id", Type: "bigint", References: "products(id)"},
				{Name: "role", Type: "text"},
			},
			Uniques: [][]string{{"person_id", "product_id", "role"}},
		},
		{
			Name: "shop_product",
			Columns: []ColumnSpec{
				{Name: "product_id", Type: "bigint", References: "products(id)"},
				{Name: "shop_id", Type: "bigint", References: "shops(id)"},
				{Name: "price", Type: "real", Nullable: true},
				{Name: "state", Type: "text"},
				{Name: "stock", Type: "boolean"},
			},
			Uniques: [][]string{{"product_id", "shop_id"}},
		},
		{
			Name:       "categories",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
			Columns: []ColumnSpec{
				{Name: "name", Type: "text"},
				{Name: "parent_id", Type: "bigint", Nullable: true, References: "categories(id)"},
			},
			// Root categories carry a NULL parent_id; engines treat NULLs as
			// distinct in unique indexes, so root-level dedup is enforced by
			// the resolver's IS NULL lookup, not by this constraint.
			Uniques: [][]string{{"name", "parent_id"}},
		},
		{
			Name: "product_category",
			Columns: []ColumnSpec{
				{Name: "product_id", Type: "bigint", References: "products(id)"},
				{Name: "category_id", Type: "bigint", References: "categories(id)"},
			},
			Uniques: [][]string{{"product_id", "category_id"}},
		},
		{
			Name:       "customers",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
			Columns: []ColumnSpec{
				{Name: "name", Type: "text"},
			},
			Uniques: [][]string{{"name"}},
		},
		{
			Name:       "reviews",
			PrimaryKey: &PrimaryKeySpec{Name: "id", Auto: true},
			Columns: []ColumnSpec{
				{Name: "customer_id", Type: "bigint", References: "customers(id)"},
				{Name: "product_id", Type: "bigint", References: "products(id)"},
				{Name: "rating", Type: "integer"},
				{Name: "summary", Type: "text"},
				{Name: "content", Type: "text"},
			},
			Uniques: [][]string{{"customer_id", "product_id"}},
		},
		{
			Name: "recommendations",
			Columns: []ColumnSpec{
				{Name: "product_id", Type: "bigint", References: "products(id)"},
				{Name: "recommended_product_id", Type: "bigint", References: "products(id)"},
			},
			Uniques: [][]string{{"product_id", "recommended_product_id"}},
		},
	}
}
