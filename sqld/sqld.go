// Package sqld adapts database/sql to the capability interfaces in package
// driver. It is driver-agnostic: any registered database/sql driver works
// (the tests use mattn/go-sqlite3, the runsql CLI also registers
// go-sql-driver/mysql).
package sqld

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rizesql/dbx/driver"
	"github.com/rizesql/dbx/internal/clock"
	"github.com/rizesql/dbx/internal/o11y/logging"
)

// ErrNotOpen is returned when work is issued against a connection that was
// never opened.
var ErrNotOpen = errors.New("sqld: connection not open")

type Config struct {
	Driver string
	DSN    string
	Logger *logging.Logger
	Clock  clock.Clock
}

// Conn is an openable connection over a database/sql pool. Open is
// idempotent; the pool is created and pinged on the first call and later
// calls are no-ops. Closing is the owner's job, not the execution layer's.
type Conn struct {
	cfg    Config
	log    *logging.Logger
	clk    clock.Clock
	db     *sql.DB
	opened bool
}

var _ driver.Connection = (*Conn)(nil)

func New(cfg Config) *Conn {
	log := cfg.Logger
	if log == nil {
		log = logging.Noop()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Conn{cfg: cfg, log: log, clk: clk}
}

func (c *Conn) Open() error {
	return c.OpenContext(context.Background())
}

func (c *Conn) OpenContext(ctx context.Context) error {
	if c.opened {
		return nil
	}

	db, err := sql.Open(c.cfg.Driver, c.cfg.DSN)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return err
	}

	c.db = db
	c.opened = true
	c.log.Info("database connection pool initialized",
		"driver", c.cfg.Driver)
	return nil
}

func (c *Conn) Begin() (driver.Transaction, error) {
	if !c.opened {
		return nil, ErrNotOpen
	}
	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{conn: c, tx: tx}, nil
}

func (c *Conn) NewCommand(text string) driver.Command {
	return &command{conn: c, text: text}
}

// Close shuts the pool down. Callers own the connection's lifetime; the
// execution layer never calls this.
func (c *Conn) Close() error {
	if !c.opened {
		return nil
	}
	c.opened = false
	return c.db.Close()
}
