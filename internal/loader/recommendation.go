package loader

import (
	"context"

	"mediaload/internal/parser/xmltree"
)

// loadRecommendations builds the directed (product, recommended product)
// edges from the shop files' similars lists. Both ends must already exist
// as products; an unresolved asin is a counted reference failure, not an
// error, which is why this phase runs only after all shop files loaded.
func (l *Loader) loadRecommendations(ctx context.Context, u *unit, root *xmltree.Node) {
	for _, item := range root.Children {
		asin := item.Attr("asin")
		if asin == "" {
			l.fail(ctx, u, CodeRecASIN, "unknown", "asin", "missing asin")
			continue
		}

		productID, found, err := l.lookupProduct(ctx, u, asin)
		if err != nil {
			l.fail(ctx, u, CodeRecProduct, asin, "SELECT Product", err.Error())
			continue
		}
		if !found {
			l.fail(ctx, u, CodeRecProduct, asin, "asin", "asin not found")
			continue
		}

		for _, sim := range item.ChildrenOf("similars") {
			target := sim.ChildText("asin")
			if target == "" {
				l.fail(ctx, u, CodeRecTargetASIN, asin, "asin", "missing asin in recommendation")
				continue
			}

			targetID, found, err := l.lookupProduct(ctx, u, target)
			if err != nil {
				l.fail(ctx, u, CodeRecTarget, target, "SELECT Product", err.Error())
				continue
			}
			if !found {
				l.fail(ctx, u, CodeRecTarget, target, "asin", "recommendation asin not found")
				continue
			}

			key := []Col{
				{"product_id", productID},
				{"recommended_product_id", targetID},
			}
			exists, err := l.res.Exists(ctx, u.tx, "recommendations", key)
			if err != nil {
				l.fail(ctx, u, CodeRecInsert, asin, "SELECT Recommendation", err.Error())
				continue
			}
			if !exists {
				if err := l.res.Insert(ctx, u.tx, "recommendations", key); err != nil {
					l.fail(ctx, u, CodeRecInsert, asin, "INSERT Recommendation", err.Error())
					continue
				}
				loaded("recommendation")
			}
			l.checkpoint(ctx, u, CodeRecInsert, asin)
		}
	}
}
