package dbx

import (
	"context"

	"github.com/rizesql/dbx/driver"
)

// steps abstracts the points where an execution may block or suspend:
// connection open, command execution, scalar execution and reader
// acquisition. The six primitives are implemented once against this
// interface so the blocking and the context-aware engines cannot drift.
type steps interface {
	open(conn driver.Connection) error
	exec(cmd driver.Command) error
	scalar(cmd driver.Command) (any, error)
	reader(cmd driver.Command, b driver.Behavior) (driver.Reader, error)
}

type blockingSteps struct{}

func (blockingSteps) open(conn driver.Connection) error { return conn.Open() }
func (blockingSteps) exec(cmd driver.Command) error     { return cmd.Exec() }
func (blockingSteps) scalar(cmd driver.Command) (any, error) {
	return cmd.Scalar()
}
func (blockingSteps) reader(cmd driver.Command, b driver.Behavior) (driver.Reader, error) {
	return cmd.Reader(b)
}

// contextSteps checks for cancellation before entering each suspension
// point and threads the context through the driver's context variants.
// Row advancement and mapping stay synchronous in both modes.
type contextSteps struct {
	ctx context.Context
}

func (s contextSteps) open(conn driver.Connection) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	return conn.OpenContext(s.ctx)
}

func (s contextSteps) exec(cmd driver.Command) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	return cmd.ExecContext(s.ctx)
}

func (s contextSteps) scalar(cmd driver.Command) (any, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}
	return cmd.ScalarContext(s.ctx)
}

func (s contextSteps) reader(cmd driver.Command, b driver.Behavior) (driver.Reader, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}
	return cmd.ReaderContext(s.ctx, b)
}

// run is the template every primitive shares: consume the unit, ensure the
// connection is open, run the action, close the driver command. The command
// is closed only after the action succeeds; a failing action propagates
// before disposal happens. Driver errors pass through verbatim.
func run[T any](s steps, c *Command, action func(cmd driver.Command) (T, error)) (T, error) {
	var zero T
	if c.consumed {
		return zero, ErrCommandConsumed
	}
	c.consumed = true

	if err := s.open(c.conn); err != nil {
		return zero, err
	}
	out, err := action(c.cmd)
	if err != nil {
		return zero, err
	}
	if err := c.cmd.Close(); err != nil {
		return zero, err
	}
	return out, nil
}

func execWith(s steps, c *Command) error {
	_, err := run(s, c, func(cmd driver.Command) (struct{}, error) {
		return struct{}{}, s.exec(cmd)
	})
	return err
}

// execManyWith reuses one driver command for n bind+execute cycles, in
// order. The first failing cycle aborts the remaining sets and propagates.
func execManyWith(s steps, c *Command, sets [][]driver.Param) error {
	_, err := run(s, c, func(cmd driver.Command) (struct{}, error) {
		for _, ps := range sets {
			cmd.SetParams(ps)
			if err := s.exec(cmd); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

func execManyRawWith(s steps, c *Command, sets [][]driver.RawParam) error {
	_, err := run(s, c, func(cmd driver.Command) (struct{}, error) {
		for _, ps := range sets {
			cmd.SetRawParams(ps)
			if err := s.exec(cmd); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

func scalarWith[T any](s steps, c *Command, convert func(v any) T) (T, error) {
	return run(s, c, func(cmd driver.Command) (T, error) {
		var zero T
		v, err := s.scalar(cmd)
		if err != nil {
			return zero, err
		}
		return convert(v), nil
	})
}

// readWith scopes the reader to the action: it is closed when f returns,
// whether f succeeds or not.
func readWith[T any](s steps, c *Command, b driver.Behavior, f func(r driver.Reader) (T, error)) (T, error) {
	return run(s, c, func(cmd driver.Command) (T, error) {
		var zero T
		r, err := s.reader(cmd, b)
		if err != nil {
			return zero, err
		}
		defer r.Close()
		return f(r)
	})
}

func queryWith[T any](s steps, c *Command, scan func(r driver.Row) (T, error)) ([]T, error) {
	return readWith(s, c, c.behavior, func(r driver.Reader) ([]T, error) {
		var out []T
		for r.Next() {
			v, err := scan(r)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
		return out, nil
	})
}

func querySingleWith[T any](s steps, c *Command, scan func(r driver.Row) (T, error)) (T, bool, error) {
	type first struct {
		v  T
		ok bool
	}
	res, err := readWith(s, c, c.behavior|driver.BehaviorSingleRow, func(r driver.Reader) (first, error) {
		if !r.Next() {
			return first{}, r.Err()
		}
		v, err := scan(r)
		if err != nil {
			return first{}, err
		}
		return first{v: v, ok: true}, nil
	})
	return res.v, res.ok, err
}
