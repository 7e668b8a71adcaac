package driver

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// TestConn is a scripted in-memory Connection. Every command it creates is
// recorded so tests can assert on call counts and bound parameter sets.
type TestConn struct {
	Opens     int // calls that actually opened the connection
	OpenCalls int // every Open/OpenContext call, including no-ops
	OpenErr   error
	BeginErr  error

	Commands []*TestCommand
	Txs      []*TestTx

	// Configure is applied to each command right after creation, letting a
	// test script results before the engine runs.
	Configure func(c *TestCommand)

	opened bool
}

var _ Connection = (*TestConn)(nil)

func (c *TestConn) Open() error {
	c.OpenCalls++
	if c.OpenErr != nil {
		return c.OpenErr
	}
	if !c.opened {
		c.opened = true
		c.Opens++
	}
	return nil
}

func (c *TestConn) OpenContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Open()
}

func (c *TestConn) Begin() (Transaction, error) {
	if c.BeginErr != nil {
		return nil, c.BeginErr
	}
	tx := &TestTx{conn: c}
	c.Txs = append(c.Txs, tx)
	return tx, nil
}

func (c *TestConn) NewCommand(text string) Command {
	cmd := &TestCommand{Text: text}
	c.Commands = append(c.Commands, cmd)
	if c.Configure != nil {
		c.Configure(cmd)
	}
	return cmd
}

// TestTx records how the transaction was ended.
type TestTx struct {
	Committed   bool
	RolledBack  bool
	CommitErr   error
	RollbackErr error

	conn *TestConn
}

var _ Transaction = (*TestTx)(nil)

func (t *TestTx) Commit() error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.Committed = true
	return nil
}

func (t *TestTx) Rollback() error {
	if t.RollbackErr != nil {
		return t.RollbackErr
	}
	t.RolledBack = true
	return nil
}

func (t *TestTx) Connection() Connection { return t.conn }

// TestCommand records configuration and executions. Rebinding snapshots the
// parameter set so tests observe the sequence of bindings, not just the
// final one.
type TestCommand struct {
	Text    string
	Kind    Kind
	Timeout time.Duration
	Tx      Transaction
	Closed  bool

	ParamSets [][]Param
	RawSets   [][]RawParam

	ExecCalls int
	// ExecErrs is consumed one entry per execution; a nil entry means the
	// cycle succeeds. Executions past the end of the slice succeed.
	ExecErrs []error
	// OnExec, when set, runs before each execution with the 1-based call
	// number; a non-nil result fails that cycle.
	OnExec func(call int) error

	ScalarValue any
	ScalarErr   error

	Cols      []string
	Rows      [][]any
	ReaderErr error
	Readers   []*TestReader
	Behaviors []Behavior
}

var _ Command = (*TestCommand)(nil)

func (c *TestCommand) SetKind(k Kind)                { c.Kind = k }
func (c *TestCommand) SetTimeout(d time.Duration)    { c.Timeout = d }
func (c *TestCommand) SetTransaction(tx Transaction) { c.Tx = tx }

func (c *TestCommand) SetParams(ps []Param) {
	c.ParamSets = append(c.ParamSets, append([]Param(nil), ps...))
}

func (c *TestCommand) SetRawParams(ps []RawParam) {
	c.RawSets = append(c.RawSets, append([]RawParam(nil), ps...))
}

func (c *TestCommand) Exec() error {
	c.ExecCalls++
	if c.OnExec != nil {
		if err := c.OnExec(c.ExecCalls); err != nil {
			return err
		}
	}
	if c.ExecCalls <= len(c.ExecErrs) {
		return c.ExecErrs[c.ExecCalls-1]
	}
	return nil
}

func (c *TestCommand) ExecContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Exec()
}

func (c *TestCommand) Scalar() (any, error) {
	if c.ScalarErr != nil {
		return nil, c.ScalarErr
	}
	return c.ScalarValue, nil
}

func (c *TestCommand) ScalarContext(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Scalar()
}

func (c *TestCommand) Reader(b Behavior) (Reader, error) {
	c.Behaviors = append(c.Behaviors, b)
	if c.ReaderErr != nil {
		return nil, c.ReaderErr
	}
	r := &TestReader{cols: c.Cols, rows: c.Rows}
	c.Readers = append(c.Readers, r)
	return r, nil
}

func (c *TestCommand) ReaderContext(ctx context.Context, b Behavior) (Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Reader(b)
}

func (c *TestCommand) Close() error {
	c.Closed = true
	return nil
}

// TestReader iterates scripted rows and records how far it was advanced.
type TestReader struct {
	NextCalls int
	Closed    bool

	cols []string
	rows [][]any
	idx  int
}

var _ Reader = (*TestReader)(nil)

func (r *TestReader) Next() bool {
	r.NextCalls++
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *TestReader) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.rows) {
		return fmt.Errorf("driver: scan without row")
	}
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("driver: scan expected %d destinations, got %d", len(row), len(dest))
	}
	for i, src := range row {
		if err := assign(dest[i], src); err != nil {
			return err
		}
	}
	return nil
}

func (r *TestReader) Columns() ([]string, error) { return r.cols, nil }

func (r *TestReader) Err() error { return nil }

func (r *TestReader) Close() error {
	r.Closed = true
	return nil
}

func assign(dest, src any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("driver: scan destination must be a non-nil pointer")
	}
	ev := dv.Elem()
	if src == nil {
		ev.SetZero()
		return nil
	}
	sv := reflect.ValueOf(src)
	if !sv.Type().AssignableTo(ev.Type()) {
		if sv.Type().ConvertibleTo(ev.Type()) {
			ev.Set(sv.Convert(ev.Type()))
			return nil
		}
		return fmt.Errorf("driver: cannot scan %T into %s", src, ev.Type())
	}
	ev.Set(sv)
	return nil
}
