package dbx

import "github.com/rizesql/dbx/driver"

// Exec executes the command and discards the result. The unit is consumed.
func Exec(c *Command) error {
	return execWith(blockingSteps{}, c)
}

// ExecMany executes the command once per parameter set, in order, reusing
// one driver command. The first failing cycle aborts the remaining sets and
// its error propagates unchanged. There is no partial-failure recovery.
func ExecMany(c *Command, sets [][]driver.Param) error {
	return execManyWith(blockingSteps{}, c, sets)
}

// ExecManyRaw is ExecMany with untyped name/value bindings.
func ExecManyRaw(c *Command, sets [][]driver.RawParam) error {
	return execManyRawWith(blockingSteps{}, c, sets)
}

// Scalar executes the command, takes the single scalar result and applies
// convert to it. A result set with no rows yields the driver's notion of an
// empty scalar (nil for sqld).
func Scalar[T any](c *Command, convert func(v any) T) (T, error) {
	return scalarWith(blockingSteps{}, c, convert)
}

// Read executes the command, obtains a forward-only reader scoped to this
// call, and applies f to it. The reader is closed when f returns, whether f
// succeeds or not.
func Read[T any](c *Command, f func(r driver.Reader) (T, error)) (T, error) {
	return readWith(blockingSteps{}, c, c.behavior, f)
}

// Query executes the command and eagerly maps every row with scan,
// returning the mapped rows in reader order.
func Query[T any](c *Command, scan func(r driver.Row) (T, error)) ([]T, error) {
	return queryWith(blockingSteps{}, c, scan)
}

// QuerySingle executes the command and maps the first row with scan. It
// reports ok=false for an empty result set rather than an error, and never
// advances the reader more than once.
func QuerySingle[T any](c *Command, scan func(r driver.Row) (T, error)) (T, bool, error) {
	return querySingleWith(blockingSteps{}, c, scan)
}
