// Package loader implements the upsert-and-link engine: natural-key
// resolution, per-entity validation with stable numeric failure codes,
// dependency-ordered entity builders, and the run orchestrator.
//
// The load is insert-only. "Already exists" is success everywhere, never a
// merge point, so rerunning the same inputs is a no-op apart from genuinely
// new data.
package loader

import (
	"context"
	"fmt"
	"os"

	"mediaload/internal/metrics"
	"mediaload/internal/parser/xmltree"
	"mediaload/internal/storage"
)

// Inputs names the source files for one run.
type Inputs struct {
	// Shops are the per-branch XML files. They are walked twice: once for
	// shops/products, once for recommendations.
	Shops []string

	// Categories is the category-tree XML file ("" skips the phase).
	Categories string

	// Reviews is the reviews CSV file ("" skips the phase).
	Reviews string
}

// Loader drives one catalog load. Construct with New, call Run once.
type Loader struct {
	store  *storage.Store
	res    *Resolver
	ledger *Ledger
}

func New(store *storage.Store, ledger *Ledger) *Loader {
	return &Loader{
		store:  store,
		res:    NewResolver(store.Dialect()),
		ledger: ledger,
	}
}

// Run executes the fixed load sequence: every shop file (shops, products,
// specializations, offers), then every shop file again for recommendations,
// then the category tree, then the reviews CSV. The ordering is load-bearing:
// the later phases reference products by asin and record "not found"
// failures, not errors, when a product never made it in.
//
// Run returns an error only for input files it cannot read or parse and for
// a connection that cannot start a transaction; every per-record failure
// ends up in the ledger instead.
func (l *Loader) Run(ctx context.Context, in Inputs) error {
	conn, err := l.store.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	u, err := newUnit(ctx, conn)
	if err != nil {
		return err
	}

	for _, path := range in.Shops {
		root, err := xmltree.ParseFile(path)
		if err != nil {
			return err
		}
		l.loadShop(ctx, u, root)
	}

	for _, path := range in.Shops {
		root, err := xmltree.ParseFile(path)
		if err != nil {
			return err
		}
		l.loadRecommendations(ctx, u, root)
	}

	if in.Categories != "" {
		root, err := xmltree.ParseFile(in.Categories)
		if err != nil {
			return err
		}
		l.loadCategories(ctx, u, root, nil)
	}

	if in.Reviews != "" {
		f, err := os.Open(in.Reviews)
		if err != nil {
			return err
		}
		l.loadReviews(ctx, u, f)
		f.Close()
	}

	return u.Close()
}

// fail converts one failure into a ledger entry and discards the unit's
// uncommitted statements so the connection is clean for what follows.
func (l *Loader) fail(ctx context.Context, u *unit, code Code, entity, attr, msg string) {
	l.ledger.Fail(code, entity, attr, msg)
	u.Abort(ctx)
}

// checkpoint commits the step just completed. A failed commit is a
// persistence failure of that step's site.
func (l *Loader) checkpoint(ctx context.Context, u *unit, code Code, entity string) bool {
	if err := u.Checkpoint(ctx); err != nil {
		l.ledger.Fail(code, entity, "COMMIT", err.Error())
		return false
	}
	return true
}

// loaded bumps the per-kind record counter.
func loaded(kind string) {
	metrics.Count("load.records.total", 1, "kind:"+kind)
}

// ensurePersonLink creates the person row when missing and guarantees one
// (person, product, role) link row. The same person under a different role
// gets its own link; the same role is never linked twice.
func (l *Loader) ensurePersonLink(ctx context.Context, u *unit, name string, productID int64, role string, personCode, linkCode Code) {
	personID, err := l.res.ResolveOrCreate(ctx, u.tx, "persons",
		[]Col{{"name", name}}, []string{"name"})
	if err != nil {
		l.fail(ctx, u, personCode, name, "INSERT Person", err.Error())
		return
	}

	key := []Col{
		{"person_id", personID},
		{"product_id", productID},
		{"role", role},
	}
	exists, err := l.res.Exists(ctx, u.tx, "person_product", key)
	if err != nil {
		l.fail(ctx, u, linkCode, name, "SELECT PersonProduct", err.Error())
		return
	}
	if !exists {
		if err := l.res.Insert(ctx, u.tx, "person_product", key); err != nil {
			l.fail(ctx, u, linkCode, name, "INSERT PersonProduct", err.Error())
			return
		}
	}
	l.checkpoint(ctx, u, linkCode, name)
}

// lookupProduct resolves an asin to a product id. Used by every phase that
// references products by natural key.
func (l *Loader) lookupProduct(ctx context.Context, u *unit, asin string) (int64, bool, error) {
	return l.res.LookupID(ctx, u.tx, "products", []Col{{"asin", asin}})
}
