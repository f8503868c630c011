package loader

import (
	"context"
	"database/sql"
	"fmt"
)

// unit is the run's unit-of-work handle: one dedicated connection with an
// always-open transaction. Checkpoint commits the work so far and opens the
// next transaction; Abort discards everything since the last checkpoint.
//
// Builders checkpoint after each durable step (product row, specialization
// row, each link), so an abort can only take the failed statement with it,
// never previously completed siblings.
type unit struct {
	conn *sql.Conn
	tx   *sql.Tx
}

func newUnit(ctx context.Context, conn *sql.Conn) (*unit, error) {
	u := &unit{conn: conn}
	if err := u.begin(ctx); err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return u, nil
}

func (u *unit) begin(ctx context.Context) error {
	tx, err := u.conn.BeginTx(ctx, nil)
	if err != nil {
		// Keep the finished transaction in place: later statements fail
		// with ErrTxDone and surface as per-record persistence errors
		// instead of a nil dereference.
		return err
	}
	u.tx = tx
	return nil
}

// Checkpoint commits pending statements and opens a fresh transaction.
func (u *unit) Checkpoint(ctx context.Context) error {
	if err := u.tx.Commit(); err != nil {
		_ = u.begin(ctx)
		return err
	}
	return u.begin(ctx)
}

// Abort rolls back pending statements and opens a fresh transaction, keeping
// the connection clean for the next record.
func (u *unit) Abort(ctx context.Context) {
	_ = u.tx.Rollback()
	_ = u.begin(ctx)
}

// Close commits whatever is still pending at end of run.
func (u *unit) Close() error {
	return u.tx.Commit()
}
