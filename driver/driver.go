// Package driver defines the capability interfaces the execution engine
// runs against: an openable connection, a single command, a transaction and
// a forward-only reader. There is one production implementation (package
// sqld, over database/sql) and a scripted in-memory fake in this package
// for tests.
package driver

import (
	"context"
	"time"
)

// Kind selects how the command text is interpreted by the driver.
type Kind int

const (
	KindText Kind = iota
	KindStoredProcedure
	KindTable
)

// Behavior carries read hints for reader acquisition. Adapters may ignore
// hints their underlying driver has no use for.
type Behavior int

const (
	BehaviorSequentialAccess Behavior = 1 << iota
	BehaviorSingleRow
	BehaviorSingleResult
	BehaviorSchemaOnly
	BehaviorKeyInfo
)

// BehaviorDefault is the read behavior applied when a command unit is not
// configured otherwise.
const BehaviorDefault = BehaviorSequentialAccess

// Param is a typed parameter binding: a name, a value and a type hint the
// adapter may use when converting the value for the wire. An empty Name
// means positional binding.
type Param struct {
	Name  string
	Value any
	Type  Type
}

// Type hints the driver-side type of a Param value.
type Type int

const (
	TypeUnknown Type = iota
	TypeInt
	TypeFloat
	TypeText
	TypeBlob
	TypeBool
	TypeTime
	TypeNull
)

// RawParam is an untyped name/value pair passed through to the driver as-is.
type RawParam struct {
	Name  string
	Value any
}

// Connection is an openable, stateful resource. Open must be idempotent:
// opening an already-open connection is a no-op. The execution engine never
// closes a connection; its lifetime belongs to the caller.
type Connection interface {
	Open() error
	OpenContext(ctx context.Context) error
	Begin() (Transaction, error)
	NewCommand(text string) Command
}

// Transaction is begun against an open connection and must be ended exactly
// once by Commit or Rollback.
type Transaction interface {
	Commit() error
	Rollback() error
	Connection() Connection
}

// Command is a single driver-side command. SetParams and SetRawParams
// replace any previously bound parameter set rather than accumulating.
// Close releases the command's resources.
type Command interface {
	SetKind(k Kind)
	SetTimeout(d time.Duration)
	SetTransaction(tx Transaction)
	SetParams(ps []Param)
	SetRawParams(ps []RawParam)

	Exec() error
	ExecContext(ctx context.Context) error
	Scalar() (any, error)
	ScalarContext(ctx context.Context) (any, error)
	Reader(b Behavior) (Reader, error)
	ReaderContext(ctx context.Context, b Behavior) (Reader, error)

	Close() error
}

// Row is the column-access surface handed to caller-supplied mapping
// functions.
type Row interface {
	Scan(dest ...any) error
	Columns() ([]string, error)
}

// Reader is a forward-only cursor over a result set. Next advances and
// reports whether a row is available; Err reports the first error seen
// during iteration.
type Reader interface {
	Row
	Next() bool
	Err() error
	Close() error
}
