package loader

import (
	"context"

	"mediaload/internal/parser/xmltree"
)

// loadCategories walks the category tree depth-first, parent before
// children. Each frame carries the resolved parent id (nil at the root, so
// root categories get a NULL parent and the natural-key lookup matches on
// IS NULL). The natural key is (name, parent): the same name at two
// different positions yields two distinct rows, while revisiting a name
// under the same parent reuses the existing row.
//
// <item> children attach their product to the enclosing category.
func (l *Loader) loadCategories(ctx context.Context, u *unit, node *xmltree.Node, parentID any) {
	for _, c := range node.Children {
		switch c.Tag {
		case "category":
			name := c.Text
			if name == "" {
				l.fail(ctx, u, CodeCategoryName, "Category", "name", "missing name")
				continue
			}

			id, err := l.res.ResolveOrCreate(ctx, u.tx, "categories",
				[]Col{
					{"name", name},
					{"parent_id", parentID},
				},
				[]string{"name", "parent_id"})
			if err != nil {
				l.fail(ctx, u, CodeCategoryInsert, name, "INSERT Category", err.Error())
				continue
			}
			if !l.checkpoint(ctx, u, CodeCategoryInsert, name) {
				continue
			}
			loaded("category")

			l.loadCategories(ctx, u, c, id)

		case "item":
			asin := c.Text
			if asin == "" {
				l.fail(ctx, u, CodeCategoryItemASIN, "CategoryItem", "asin", "missing asin")
				continue
			}

			productID, found, err := l.lookupProduct(ctx, u, asin)
			if err != nil {
				l.fail(ctx, u, CodeCategoryItemProduct, asin, "SELECT Product", err.Error())
				continue
			}
			if !found {
				l.fail(ctx, u, CodeCategoryItemProduct, asin, "product", "missing product")
				continue
			}

			key := []Col{
				{"product_id", productID},
				{"category_id", parentID},
			}
			exists, err := l.res.Exists(ctx, u.tx, "product_category", key)
			if err != nil {
				l.fail(ctx, u, CodeProductCategoryInsert, asin, "SELECT ProductCategory", err.Error())
				continue
			}
			if !exists {
				if err := l.res.Insert(ctx, u.tx, "product_category", key); err != nil {
					l.fail(ctx, u, CodeProductCategoryInsert, asin, "INSERT ProductCategory", err.Error())
					continue
				}
			}
			l.checkpoint(ctx, u, CodeProductCategoryInsert, asin)
		}
	}
}
