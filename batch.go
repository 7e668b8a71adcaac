package dbx

import (
	"context"

	"github.com/rizesql/dbx/driver"
)

// Batch runs fn inside a transaction on conn: ensure the connection is
// open, begin, run fn with the transaction handle, commit on success. Any
// failure from fn triggers a rollback and is returned unchanged, so callers
// see the same error they would have seen without a transaction; a rollback
// failure does not displace it.
func Batch[T any](conn driver.Connection, fn func(tx driver.Transaction) (T, error)) (T, error) {
	var zero T
	if err := conn.Open(); err != nil {
		return zero, err
	}
	tx, err := conn.Begin()
	if err != nil {
		return zero, err
	}
	out, err := fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	return out, nil
}

// BatchContext is Batch with cancellation: the connection open suspends on
// ctx and fn receives it for its own context-aware work. Beginning the
// transaction is not a suspension point.
func BatchContext[T any](ctx context.Context, conn driver.Connection, fn func(ctx context.Context, tx driver.Transaction) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if err := conn.OpenContext(ctx); err != nil {
		return zero, err
	}
	tx, err := conn.Begin()
	if err != nil {
		return zero, err
	}
	out, err := fn(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	return out, nil
}
