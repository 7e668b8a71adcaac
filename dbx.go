// Package dbx is a thin, resource-safe execution layer over the capability
// interfaces in package driver. It owns connection lifecycle (idempotent
// open, never close), parameter binding, command disposal and all-or-nothing
// batches, in a blocking and a context-aware mode with identical semantics.
//
// It is not an ORM and not a pool: it orchestrates calls into an
// already-constructed driver command and manages the surrounding resource
// and transaction discipline.
package dbx

import (
	"time"

	"github.com/rizesql/dbx/driver"
)

// Command is a single-use builder wrapping one driver command plus its
// execution configuration. It is consumed by exactly one execution call;
// after that the underlying command is closed and the unit rejects reuse
// with ErrCommandConsumed.
//
// Configuration methods mutate the unit in place and return it for
// chaining. A Command is not safe for concurrent use.
type Command struct {
	conn     driver.Connection
	cmd      driver.Command
	behavior driver.Behavior
	consumed bool
}

// NewCommand creates a command unit for text against conn. No I/O happens
// until the unit is passed to an execution function.
func NewCommand(conn driver.Connection, text string) *Command {
	return &Command{
		conn:     conn,
		cmd:      conn.NewCommand(text),
		behavior: driver.BehaviorDefault,
	}
}

// NewCommandTx creates a command unit bound to the transaction's connection
// with the transaction already attached.
func NewCommandTx(tx driver.Transaction, text string) *Command {
	return NewCommand(tx.Connection(), text).Tx(tx)
}

// Params binds a typed parameter set, replacing any prior bindings.
func (c *Command) Params(ps ...driver.Param) *Command {
	c.cmd.SetParams(ps)
	return c
}

// RawParams binds untyped name/value pairs, replacing any prior bindings.
func (c *Command) RawParams(ps ...driver.RawParam) *Command {
	c.cmd.SetRawParams(ps)
	return c
}

// Timeout sets the command timeout.
func (c *Command) Timeout(d time.Duration) *Command {
	c.cmd.SetTimeout(d)
	return c
}

// Kind sets how the driver interprets the command text.
func (c *Command) Kind(k driver.Kind) *Command {
	c.cmd.SetKind(k)
	return c
}

// Behavior sets the read hints used when a reader is acquired.
func (c *Command) Behavior(b driver.Behavior) *Command {
	c.behavior = b
	return c
}

// Tx attaches a transaction begun by the caller (or by Batch).
func (c *Command) Tx(tx driver.Transaction) *Command {
	c.cmd.SetTransaction(tx)
	return c
}
