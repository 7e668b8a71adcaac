// Package testkit wires a real sqlite-backed connection for tests that
// need to observe end-to-end behavior (constraints, rollbacks, real scans)
// rather than the scripted driver fake.
package testkit

import (
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rizesql/dbx"
	"github.com/rizesql/dbx/driver"
	"github.com/rizesql/dbx/internal/assert"
	"github.com/rizesql/dbx/internal/clock"
	"github.com/rizesql/dbx/internal/o11y/logging"
	"github.com/rizesql/dbx/sqld"
)

// Each harness gets its own shared-cache in-memory database: plain
// ":memory:" gives every pooled connection its own empty database, and a
// fixed name would leak state between tests.
var dbSeq atomic.Int64

// Statements run one by one: commands are prepared, and a prepared
// statement holds exactly one statement.
var schema = []string{
	`CREATE TABLE points (
		x INTEGER NOT NULL
	)`,
	`CREATE TABLE users (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		age      INTEGER
	)`,
}

type Harness struct {
	t *testing.T

	Conn   *sqld.Conn
	Clock  *clock.TestClock
	Logger *logging.Logger
}

func NewHarness(t *testing.T) *Harness {
	t.Helper()

	logger := logging.Noop()
	testClock := clock.NewTestClock()

	conn := sqld.New(sqld.Config{
		Driver: "sqlite3",
		DSN:    fmt.Sprintf("file:testkit%d?mode=memory&cache=shared", dbSeq.Add(1)),
		Logger: logger,
		Clock:  testClock,
	})
	assert.Err(t, conn.Open(), nil)

	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Error(err)
		}
	})

	h := &Harness{t: t, Conn: conn, Clock: testClock, Logger: logger}
	h.migrate()
	return h
}

func (h *Harness) migrate() {
	h.t.Helper()
	for _, stmt := range schema {
		err := dbx.Exec(dbx.NewCommand(h.Conn, stmt))
		assert.Err(h.t, err, nil)
	}
}

// BadConn returns a connection whose open always fails, for tests that
// need a driver-level open error.
func BadConn() *sqld.Conn {
	return sqld.New(sqld.Config{Driver: "no-such-driver", DSN: "unreachable"})
}

// --- Data Helpers ---

// Exec runs one statement through the library, failing the test on error.
func (h *Harness) Exec(text string, ps ...driver.Param) {
	h.t.Helper()
	err := dbx.Exec(dbx.NewCommand(h.Conn, text).Params(ps...))
	assert.Err(h.t, err, nil)
}

// Count returns COUNT(*) for the given table.
func (h *Harness) Count(table string) int64 {
	h.t.Helper()
	n, err := dbx.Scalar(dbx.NewCommand(h.Conn, "SELECT COUNT(*) FROM "+table), func(v any) int64 {
		return v.(int64)
	})
	assert.Err(h.t, err, nil)
	return n
}
