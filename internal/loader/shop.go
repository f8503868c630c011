package loader

import (
	"context"

	"mediaload/internal/parser/xmltree"
)

// loadShop builds one branch: the shop row (with its address) and every
// product element under it in document order.
//
// The address belongs to the shop at creation time and is inserted only
// when the shop itself is new; shops are deduplicated by name.
func (l *Loader) loadShop(ctx context.Context, u *unit, root *xmltree.Node) {
	name := root.Attr("name")
	street := root.Attr("street")
	zip := root.Attr("zip")

	if name == "" || street == "" || zip == "" {
		l.fail(ctx, u, CodeShopFields, name, "name", "missing name, street, or zip")
		return
	}

	shopID, found, err := l.res.LookupID(ctx, u.tx, "shops", []Col{{"name", name}})
	if err != nil {
		l.fail(ctx, u, CodeShopInsert, name, "SELECT Shop", err.Error())
		return
	}
	if !found {
		addressID, err := l.res.InsertReturningID(ctx, u.tx, "addresses", []Col{
			{"street", street},
			{"zip", zip},
		})
		if err != nil {
			l.fail(ctx, u, CodeAddressInsert, name, "INSERT Address", err.Error())
			return
		}

		shopID, err = l.res.InsertReturningID(ctx, u.tx, "shops", []Col{
			{"name", name},
			{"address_id", addressID},
		})
		if err != nil {
			l.fail(ctx, u, CodeShopInsert, name, "INSERT Shop", err.Error())
			return
		}
		loaded("shop")
	}
	if !l.checkpoint(ctx, u, CodeShopInsert, name) {
		return
	}

	for _, item := range root.Children {
		l.loadItem(ctx, u, item, shopID)
	}
}

// loadItem builds one product element: the product row, its group
// specialization, and the shop offer link. A specialization failure aborts
// the rest of the item (the product row, already checkpointed, stays).
func (l *Loader) loadItem(ctx context.Context, u *unit, item *xmltree.Node, shopID int64) {
	asin := item.Attr("asin")
	if asin == "" {
		l.fail(ctx, u, CodeProductASIN, "unknown", "asin", "missing asin")
		return
	}

	group := item.Attr("pgroup")
	if !validGroup(group) {
		l.fail(ctx, u, CodeProductGroup, asin, "pgroup", "unknown product group")
		return
	}

	name := item.ChildText("title")
	if name == "" {
		l.fail(ctx, u, CodeProductName, asin, "name", "missing name")
		return
	}

	// Optional attributes: NULL when absent; an unparsable sales rank is
	// also NULL, not a failure.
	var image any
	if v := item.Attr("picture"); v != "" {
		image = v
	}
	var salesrank any
	if v := item.Attr("salesrank"); v != "" {
		if n, ok := parseInt(v); ok {
			salesrank = n
		}
	}

	productID, found, err := l.lookupProduct(ctx, u, asin)
	if err != nil {
		l.fail(ctx, u, CodeProductInsert, asin, "SELECT Product", err.Error())
		return
	}
	if !found {
		productID, err = l.res.InsertReturningID(ctx, u.tx, "products", []Col{
			{"asin", asin},
			{"name", name},
			{"image", image},
			{"salesrank", salesrank},
		})
		if err != nil {
			l.fail(ctx, u, CodeProductInsert, asin, "INSERT Product", err.Error())
			return
		}
		loaded("product")
	}
	if !l.checkpoint(ctx, u, CodeProductInsert, asin) {
		return
	}

	ok := false
	switch group {
	case "Music":
		ok = l.loadMusic(ctx, u, item, asin, productID)
	case "DVD":
		ok = l.loadDvd(ctx, u, item, asin, productID)
	case "Book":
		ok = l.loadBook(ctx, u, item, asin, productID)
	}
	if !ok {
		return
	}

	l.loadOffer(ctx, u, item, asin, productID, shopID)
}

// loadOffer builds the (product, shop) link row carrying price, sale state
// and the derived stock flag: stock is true iff the price parses to a
// non-zero number; a missing or unparsable price is stored as NULL.
func (l *Loader) loadOffer(ctx context.Context, u *unit, item *xmltree.Node, asin string, productID, shopID int64) {
	priceNode := item.Child("price")

	state, ok := parseState(priceNode.Attr("state"))
	if !ok {
		l.fail(ctx, u, CodeOfferState, asin, "state", "invalid state")
		return
	}

	var price any
	stock := false
	if priceNode != nil {
		if p, ok := parsePrice(priceNode.Text); ok {
			price = p
			stock = p != 0
		}
	}

	key := []Col{
		{"product_id", productID},
		{"shop_id", shopID},
	}
	exists, err := l.res.Exists(ctx, u.tx, "shop_product", key)
	if err != nil {
		l.fail(ctx, u, CodeOfferInsert, asin, "SELECT ShopProduct", err.Error())
		return
	}
	if !exists {
		err := l.res.Insert(ctx, u.tx, "shop_product", []Col{
			{"product_id", productID},
			{"shop_id", shopID},
			{"price", price},
			{"state", state},
			{"stock", stock},
		})
		if err != nil {
			l.fail(ctx, u, CodeOfferInsert, asin, "INSERT ShopProduct", err.Error())
			return
		}
	}
	l.checkpoint(ctx, u, CodeOfferInsert, asin)
}
