package dbx_test

import (
	"context"
	"testing"

	"github.com/rizesql/dbx"
	"github.com/rizesql/dbx/driver"
	"github.com/rizesql/dbx/internal/assert"
)

func TestExecContext(t *testing.T) {
	conn := &driver.TestConn{}

	err := dbx.ExecContext(t.Context(), dbx.NewCommand(conn, "DELETE FROM t"))
	assert.Err(t, err, nil)

	assert.Equal(t, conn.Opens, 1)
	assert.Equal(t, conn.Commands[0].ExecCalls, 1)
	assert.True(t, conn.Commands[0].Closed)
}

func TestExecContextCanceledBeforeOpen(t *testing.T) {
	conn := &driver.TestConn{}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := dbx.ExecContext(ctx, dbx.NewCommand(conn, "DELETE FROM t"))
	assert.Err(t, err, context.Canceled)

	// No suspension point was entered.
	assert.Equal(t, conn.OpenCalls, 0)
	assert.Equal(t, conn.Commands[0].ExecCalls, 0)
}

func TestExecManyContextCancelMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) {
			c.OnExec = func(call int) error {
				if call == 2 {
					cancel()
				}
				return nil
			}
		},
	}

	sets := [][]driver.Param{
		{dbx.Int("x", 1)},
		{dbx.Int("x", 2)},
		{dbx.Int("x", 3)},
	}
	err := dbx.ExecManyContext(ctx, dbx.NewCommand(conn, "INSERT INTO t(x) VALUES(@x)"), sets)
	assert.Err(t, err, context.Canceled)

	// Cancellation surfaced before cycle three was entered.
	assert.Equal(t, conn.Commands[0].ExecCalls, 2)
}

func TestExecManyRawContextCanceled(t *testing.T) {
	conn := &driver.TestConn{}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	sets := [][]driver.RawParam{{dbx.Raw("x", 1)}}
	err := dbx.ExecManyRawContext(ctx, dbx.NewCommand(conn, "INSERT INTO t(x) VALUES(@x)"), sets)
	assert.Err(t, err, context.Canceled)
	assert.Equal(t, conn.Commands[0].ExecCalls, 0)
}

func TestScalarContext(t *testing.T) {
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) { c.ScalarValue = "ok" },
	}

	s, err := dbx.ScalarContext(t.Context(), dbx.NewCommand(conn, "SELECT 'ok'"), func(v any) string {
		return v.(string)
	})
	assert.Err(t, err, nil)
	assert.Equal(t, s, "ok")
}

func TestQueryContext(t *testing.T) {
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) {
			c.Cols = []string{"x"}
			c.Rows = [][]any{{int64(1)}, {int64(2)}}
		},
	}

	got, err := dbx.QueryContext(t.Context(), dbx.NewCommand(conn, "SELECT x FROM t"), scanInt)
	assert.Err(t, err, nil)
	assert.Equal(t, got, []int64{1, 2})
}

func TestQuerySingleContextCanceled(t *testing.T) {
	conn := &driver.TestConn{}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, ok, err := dbx.QuerySingleContext(ctx, dbx.NewCommand(conn, "SELECT x FROM t"), scanInt)
	assert.Err(t, err, context.Canceled)
	assert.True(t, !ok)
	assert.Equal(t, len(conn.Commands[0].Readers), 0)
}
