package sqld

import (
	"database/sql"

	"github.com/rizesql/dbx/driver"
)

// Tx wraps *sql.Tx. Whoever begins it ends it, exactly once.
type Tx struct {
	conn *Conn
	tx   *sql.Tx
}

var _ driver.Transaction = (*Tx)(nil)

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

func (t *Tx) Connection() driver.Connection { return t.conn }
