package loader

import (
	"context"

	"mediaload/internal/parser/xmltree"
)

// loadBook builds the book specialization, its publisher, and the author
// links.
//
// Publisher selection: the first publisher entry in document order with a
// non-empty name; later entries are ignored.
//
// Author links are ensured even when the book row already existed: every
// author gets exactly one (person, product, AUTHOR) link row, with person
// rows created only when missing.
func (l *Loader) loadBook(ctx context.Context, u *unit, item *xmltree.Node, asin string, productID int64) bool {
	spec := item.Child("bookspec")

	isbn := spec.Child("isbn").Attr("val")
	if isbn == "" {
		l.fail(ctx, u, CodeBookISBN, asin, "isbn", "missing isbn")
		return false
	}

	pages, ok := parseInt(spec.ChildText("pages"))
	if !ok {
		l.fail(ctx, u, CodeBookPages, asin, "n_pages", "missing number of pages")
		return false
	}

	published, ok := parseDate(spec.Child("publication").Attr("date"))
	if !ok {
		l.fail(ctx, u, CodeBookPublication, asin, "date_published", "missing date published")
		return false
	}

	publisher := ""
	for _, p := range item.ChildrenOf("publishers") {
		if v := p.Attr("name"); v != "" {
			publisher = v
			break
		}
	}
	if publisher == "" {
		l.fail(ctx, u, CodeBookPublisher, asin, "publisher", "missing publisher")
		return false
	}

	publisherID, err := l.res.ResolveOrCreate(ctx, u.tx, "publishers",
		[]Col{{"name", publisher}}, []string{"name"})
	if err != nil {
		l.fail(ctx, u, CodePublisherInsert, publisher, "INSERT Publisher", err.Error())
		return false
	}

	exists, err := l.res.Exists(ctx, u.tx, "books", []Col{{"id", productID}})
	if err != nil {
		l.fail(ctx, u, CodeBookInsert, asin, "SELECT Book", err.Error())
		return false
	}
	if !exists {
		err := l.res.Insert(ctx, u.tx, "books", []Col{
			{"id", productID},
			{"isbn", isbn},
			{"n_pages", pages},
			{"date_published", published},
			{"publisher_id", publisherID},
		})
		if err != nil {
			l.fail(ctx, u, CodeBookInsert, asin, "INSERT Book", err.Error())
			return false
		}
		loaded("book")
	}
	if !l.checkpoint(ctx, u, CodeBookInsert, asin) {
		return false
	}

	for _, a := range item.ChildrenOf("authors") {
		name := a.Attr("name")
		if name == "" {
			continue
		}
		l.ensurePersonLink(ctx, u, name, productID, "AUTHOR", CodeAuthorInsert, CodeAuthorLink)
	}

	return true
}
