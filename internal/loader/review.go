package loader

import (
	"context"
	"fmt"
	"io"

	csvx "mediaload/internal/parser/csv"
)

// loadReviews streams the reviews CSV. Every field is required; the rating
// must be an integer in [1,5]. Reviews are deduplicated per (customer,
// product): a later row for the same pair is skipped silently, matching the
// insert-only discipline everywhere else. A malformed CSV line carries no
// attributable asin and is counted under the asin code.
func (l *Loader) loadReviews(ctx context.Context, u *unit, src io.Reader) {
	err := csvx.EachRecord(src, func(rec csvx.Record) error {
		asin := rec.Get("product")
		if asin == "" {
			l.fail(ctx, u, CodeReviewASIN, "Review", "asin", "missing asin")
			return nil
		}

		rating, ok := parseRating(rec.Get("rating"))
		if !ok {
			l.fail(ctx, u, CodeReviewRating, asin, "rating", "missing or out-of-range rating")
			return nil
		}

		customer := rec.Get("user")
		if customer == "" {
			l.fail(ctx, u, CodeReviewCustomer, asin, "customer_name", "missing customer name")
			return nil
		}

		summary := rec.Get("summary")
		if summary == "" {
			l.fail(ctx, u, CodeReviewSummary, asin, "summary", "missing summary")
			return nil
		}

		content := rec.Get("content")
		if content == "" {
			l.fail(ctx, u, CodeReviewContent, asin, "content", "missing content")
			return nil
		}

		productID, found, err := l.lookupProduct(ctx, u, asin)
		if err != nil {
			l.fail(ctx, u, CodeReviewProduct, asin, "SELECT Product", err.Error())
			return nil
		}
		if !found {
			l.fail(ctx, u, CodeReviewProduct, asin, "product", "missing reviewed product")
			return nil
		}

		customerID, err := l.res.ResolveOrCreate(ctx, u.tx, "customers",
			[]Col{{"name", customer}}, []string{"name"})
		if err != nil {
			l.fail(ctx, u, CodeCustomerInsert, customer, "INSERT Customer", err.Error())
			return nil
		}

		key := []Col{
			{"customer_id", customerID},
			{"product_id", productID},
		}
		exists, err := l.res.Exists(ctx, u.tx, "reviews", key)
		if err != nil {
			l.fail(ctx, u, CodeReviewInsert, asin, "SELECT Review", err.Error())
			return nil
		}
		if !exists {
			err := l.res.Insert(ctx, u.tx, "reviews", []Col{
				{"customer_id", customerID},
				{"product_id", productID},
				{"rating", rating},
				{"summary", summary},
				{"content", content},
			})
			if err != nil {
				l.fail(ctx, u, CodeReviewInsert, asin, "INSERT Review", err.Error())
				return nil
			}
			loaded("review")
		}
		l.checkpoint(ctx, u, CodeReviewInsert, asin)
		return nil
	}, func(line int, err error) {
		l.fail(ctx, u, CodeReviewASIN, "Review", "csv", fmt.Sprintf("line %d: %v", line, err))
	})
	if err != nil {
		l.fail(ctx, u, CodeReviewASIN, "Review", "csv", err.Error())
	}
}
