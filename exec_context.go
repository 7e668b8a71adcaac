package dbx

import (
	"context"

	"github.com/rizesql/dbx/driver"
)

// The context-aware engine mirrors the blocking one exactly. Suspension
// points are connection open, command execution, scalar execution, reader
// acquisition and each bound execution of a multi-set batch; cancellation
// observed at any of them aborts with the context's error before the driver
// is entered. Row advancement and mapping never suspend.

// ExecContext is Exec with cancellation.
func ExecContext(ctx context.Context, c *Command) error {
	return execWith(contextSteps{ctx: ctx}, c)
}

// ExecManyContext is ExecMany with cancellation checked before every
// bind+execute cycle; once canceled, no further parameter set runs.
func ExecManyContext(ctx context.Context, c *Command, sets [][]driver.Param) error {
	return execManyWith(contextSteps{ctx: ctx}, c, sets)
}

// ExecManyRawContext is ExecManyRaw with cancellation.
func ExecManyRawContext(ctx context.Context, c *Command, sets [][]driver.RawParam) error {
	return execManyRawWith(contextSteps{ctx: ctx}, c, sets)
}

// ScalarContext is Scalar with cancellation.
func ScalarContext[T any](ctx context.Context, c *Command, convert func(v any) T) (T, error) {
	return scalarWith(contextSteps{ctx: ctx}, c, convert)
}

// ReadContext is Read with cancellation. Only the reader's acquisition
// suspends; f itself runs synchronously.
func ReadContext[T any](ctx context.Context, c *Command, f func(r driver.Reader) (T, error)) (T, error) {
	return readWith(contextSteps{ctx: ctx}, c, c.behavior, f)
}

// QueryContext is Query with cancellation.
func QueryContext[T any](ctx context.Context, c *Command, scan func(r driver.Row) (T, error)) ([]T, error) {
	return queryWith(contextSteps{ctx: ctx}, c, scan)
}

// QuerySingleContext is QuerySingle with cancellation.
func QuerySingleContext[T any](ctx context.Context, c *Command, scan func(r driver.Row) (T, error)) (T, bool, error) {
	return querySingleWith(contextSteps{ctx: ctx}, c, scan)
}
