package dbx_test

import (
	"errors"
	"testing"

	"github.com/rizesql/dbx"
	"github.com/rizesql/dbx/driver"
	"github.com/rizesql/dbx/internal/assert"
)

func TestExec(t *testing.T) {
	conn := &driver.TestConn{}

	err := dbx.Exec(dbx.NewCommand(conn, "DELETE FROM t"))
	assert.Err(t, err, nil)

	assert.Equal(t, conn.Opens, 1)
	cmd := conn.Commands[0]
	assert.Equal(t, cmd.ExecCalls, 1)
	assert.True(t, cmd.Closed)
}

func TestExecOpenIsIdempotent(t *testing.T) {
	conn := &driver.TestConn{}

	assert.Err(t, dbx.Exec(dbx.NewCommand(conn, "DELETE FROM t")), nil)
	assert.Err(t, dbx.Exec(dbx.NewCommand(conn, "DELETE FROM t")), nil)

	// Two primitives ran, but only the first actually opened.
	assert.Equal(t, conn.OpenCalls, 2)
	assert.Equal(t, conn.Opens, 1)
}

func TestExecConsumedUnit(t *testing.T) {
	conn := &driver.TestConn{}
	unit := dbx.NewCommand(conn, "DELETE FROM t")

	assert.Err(t, dbx.Exec(unit), nil)

	err := dbx.Exec(unit)
	assert.Err(t, err, dbx.ErrCommandConsumed)
	assert.Equal(t, conn.Commands[0].ExecCalls, 1)
}

func TestExecOpenFailure(t *testing.T) {
	errOpen := errors.New("connection refused")
	conn := &driver.TestConn{OpenErr: errOpen}

	err := dbx.Exec(dbx.NewCommand(conn, "DELETE FROM t"))
	assert.Err(t, err, errOpen)
	assert.Equal(t, conn.Commands[0].ExecCalls, 0)
}

func TestExecFailureSkipsDisposal(t *testing.T) {
	errExec := errors.New("syntax error")
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) { c.ExecErrs = []error{errExec} },
	}

	err := dbx.Exec(dbx.NewCommand(conn, "DELETE FRM t"))
	assert.Err(t, err, errExec)

	// The command is closed only after a successful action.
	assert.True(t, !conn.Commands[0].Closed)
}

func TestExecMany(t *testing.T) {
	conn := &driver.TestConn{}

	sets := [][]driver.Param{
		{dbx.Int("x", 1)},
		{dbx.Int("x", 2)},
		{dbx.Int("x", 3)},
	}
	err := dbx.ExecMany(dbx.NewCommand(conn, "INSERT INTO t(x) VALUES(@x)"), sets)
	assert.Err(t, err, nil)

	cmd := conn.Commands[0]
	assert.Equal(t, cmd.ExecCalls, 3)
	assert.Equal(t, len(cmd.ParamSets), 3)
	for i, ps := range cmd.ParamSets {
		assert.Equal[any](t, ps[0].Value, int64(i+1))
	}
	assert.True(t, cmd.Closed)
}

func TestExecManyAbortsOnFirstFailure(t *testing.T) {
	errCycle := errors.New("constraint violation")
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) { c.ExecErrs = []error{nil, errCycle} },
	}

	sets := [][]driver.Param{
		{dbx.Int("x", 1)},
		{dbx.Int("x", 2)},
		{dbx.Int("x", 3)},
	}
	err := dbx.ExecMany(dbx.NewCommand(conn, "INSERT INTO t(x) VALUES(@x)"), sets)
	assert.Err(t, err, errCycle)

	assert.Equal(t, conn.Commands[0].ExecCalls, 2)
}

func TestExecManyRaw(t *testing.T) {
	conn := &driver.TestConn{}

	sets := [][]driver.RawParam{
		{dbx.Raw("x", "a")},
		{dbx.Raw("x", "b")},
	}
	err := dbx.ExecManyRaw(dbx.NewCommand(conn, "INSERT INTO t(x) VALUES(@x)"), sets)
	assert.Err(t, err, nil)

	cmd := conn.Commands[0]
	assert.Equal(t, cmd.ExecCalls, 2)
	assert.Equal(t, len(cmd.RawSets), 2)
	assert.Equal(t, cmd.RawSets[1][0].Value, "b")
}

func TestScalar(t *testing.T) {
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) { c.ScalarValue = int64(42) },
	}

	n, err := dbx.Scalar(dbx.NewCommand(conn, "SELECT COUNT(*) FROM t"), func(v any) int64 {
		return v.(int64)
	})
	assert.Err(t, err, nil)
	assert.Equal(t, n, int64(42))
	assert.True(t, conn.Commands[0].Closed)
}

func TestReadClosesReaderOnMapperFailure(t *testing.T) {
	errScan := errors.New("bad row")
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) {
			c.Cols = []string{"x"}
			c.Rows = [][]any{{int64(1)}}
		},
	}

	_, err := dbx.Read(dbx.NewCommand(conn, "SELECT x FROM t"), func(r driver.Reader) (int, error) {
		return 0, errScan
	})
	assert.Err(t, err, errScan)

	assert.True(t, conn.Commands[0].Readers[0].Closed)
}

func TestQuery(t *testing.T) {
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) {
			c.Cols = []string{"x"}
			c.Rows = [][]any{{int64(10)}, {int64(20)}, {int64(30)}}
		},
	}

	got, err := dbx.Query(dbx.NewCommand(conn, "SELECT x FROM t"), scanInt)
	assert.Err(t, err, nil)
	assert.Equal(t, got, []int64{10, 20, 30})

	cmd := conn.Commands[0]
	assert.True(t, cmd.Readers[0].Closed)
	assert.True(t, cmd.Closed)
}

func TestQuerySingleNoRows(t *testing.T) {
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) { c.Cols = []string{"x"} },
	}

	_, ok, err := dbx.QuerySingle(dbx.NewCommand(conn, "SELECT x FROM t"), scanInt)
	assert.Err(t, err, nil)
	assert.True(t, !ok)

	assert.Equal(t, conn.Commands[0].Readers[0].NextCalls, 1)
}

func TestQuerySingle(t *testing.T) {
	conn := &driver.TestConn{
		Configure: func(c *driver.TestCommand) {
			c.Cols = []string{"x"}
			c.Rows = [][]any{{int64(7)}, {int64(8)}}
		},
	}

	got, ok, err := dbx.QuerySingle(dbx.NewCommand(conn, "SELECT x FROM t"), scanInt)
	assert.Err(t, err, nil)
	assert.True(t, ok)
	assert.Equal(t, got, int64(7))

	// The reader is advanced exactly once even when more rows exist.
	cmd := conn.Commands[0]
	assert.Equal(t, cmd.Readers[0].NextCalls, 1)
	assert.Equal(t, cmd.Behaviors[0]&driver.BehaviorSingleRow, driver.BehaviorSingleRow)
}

func scanInt(r driver.Row) (int64, error) {
	var x int64
	err := r.Scan(&x)
	return x, err
}
