package sqld

import (
	"context"
	"database/sql"

	"github.com/rizesql/dbx/driver"
)

// reader wraps *sql.Rows. The cancel func releases the command-timeout
// context that scopes the cursor, so it must not fire before iteration is
// done.
type reader struct {
	rows   *sql.Rows
	cancel context.CancelFunc
}

var _ driver.Reader = (*reader)(nil)

func (r *reader) Next() bool { return r.rows.Next() }

func (r *reader) Scan(dest ...any) error { return r.rows.Scan(dest...) }

func (r *reader) Columns() ([]string, error) { return r.rows.Columns() }

func (r *reader) Err() error { return r.rows.Err() }

func (r *reader) Close() error {
	err := r.rows.Close()
	r.cancel()
	return err
}
