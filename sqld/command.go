package sqld

import (
	"context"
	"database/sql"
	"time"

	"github.com/rizesql/dbx/driver"
)

// dbtx is the slice of *sql.DB / *sql.Tx the command needs.
type dbtx interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

var (
	_ dbtx = (*sql.DB)(nil)
	_ dbtx = (*sql.Tx)(nil)
)

// command lazily prepares a statement on first execution and reuses it for
// every later cycle, so a multi-set batch pays the parse cost once. Close
// releases the prepared statement.
type command struct {
	conn    *Conn
	tx      *sql.Tx
	text    string
	kind    driver.Kind
	timeout time.Duration
	args    []any
	stmt    *sql.Stmt
}

var _ driver.Command = (*command)(nil)

func (c *command) SetKind(k driver.Kind)      { c.kind = k }
func (c *command) SetTimeout(d time.Duration) { c.timeout = d }

func (c *command) SetTransaction(tx driver.Transaction) {
	if t, ok := tx.(*Tx); ok {
		c.tx = t.tx
	}
}

// SetParams replaces the bound arguments. Named parameters become
// sql.Named args; an empty name binds positionally. Type hints are only
// consulted for TypeNull, everything else is left to the driver's own
// conversion and fails there if it must.
func (c *command) SetParams(ps []driver.Param) {
	args := make([]any, 0, len(ps))
	for _, p := range ps {
		v := p.Value
		if p.Type == driver.TypeNull {
			v = nil
		}
		args = append(args, arg(p.Name, v))
	}
	c.args = args
}

func (c *command) SetRawParams(ps []driver.RawParam) {
	args := make([]any, 0, len(ps))
	for _, p := range ps {
		args = append(args, arg(p.Name, p.Value))
	}
	c.args = args
}

func arg(name string, v any) any {
	if name == "" {
		return v
	}
	return sql.Named(name, v)
}

// sqlText renders the command text for the configured kind. database/sql
// has no table-direct or procedure mode, so KindTable becomes a SELECT and
// procedure text passes through for drivers that accept CALL syntax.
func (c *command) sqlText() string {
	if c.kind == driver.KindTable {
		return "SELECT * FROM " + c.text
	}
	return c.text
}

func (c *command) prepare(ctx context.Context) (*sql.Stmt, error) {
	if c.stmt != nil {
		return c.stmt, nil
	}
	var target dbtx = c.conn.db
	if c.tx != nil {
		target = c.tx
	}
	if target == nil {
		return nil, ErrNotOpen
	}
	stmt, err := target.PrepareContext(ctx, c.sqlText())
	if err != nil {
		return nil, err
	}
	c.stmt = stmt
	return stmt, nil
}

func (c *command) deadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

func (c *command) Exec() error {
	return c.ExecContext(context.Background())
}

func (c *command) ExecContext(ctx context.Context) error {
	ctx, cancel := c.deadline(ctx)
	defer cancel()

	stmt, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	start := c.conn.clk.Now()
	_, err = stmt.ExecContext(ctx, c.args...)
	c.conn.log.Debug("exec",
		"elapsed", c.conn.clk.Now().Sub(start))
	return err
}

func (c *command) Scalar() (any, error) {
	return c.ScalarContext(context.Background())
}

// ScalarContext returns the first column of the first row, or nil when the
// result set is empty.
func (c *command) ScalarContext(ctx context.Context) (any, error) {
	ctx, cancel := c.deadline(ctx)
	defer cancel()

	stmt, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, c.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var v any
	if err := rows.Scan(&v); err != nil {
		return nil, err
	}
	return v, rows.Err()
}

func (c *command) Reader(b driver.Behavior) (driver.Reader, error) {
	return c.ReaderContext(context.Background(), b)
}

// ReaderContext acquires the row cursor. Read behavior flags are hints;
// database/sql exposes nothing to apply them to, so they are accepted and
// ignored.
func (c *command) ReaderContext(ctx context.Context, b driver.Behavior) (driver.Reader, error) {
	ctx, cancel := c.deadline(ctx)

	stmt, err := c.prepare(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, c.args...)
	if err != nil {
		cancel()
		return nil, err
	}
	return &reader{rows: rows, cancel: cancel}, nil
}

func (c *command) Close() error {
	if c.stmt == nil {
		return nil
	}
	stmt := c.stmt
	c.stmt = nil
	return stmt.Close()
}
