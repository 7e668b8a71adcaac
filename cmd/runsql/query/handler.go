package query

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rizesql/dbx"
	"github.com/rizesql/dbx/cmd/runsql/connect"
	"github.com/rizesql/dbx/driver"
	"github.com/rizesql/dbx/internal/o11y/logging"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := connect.NewConfig(cmd)
	if err != nil {
		return err
	}

	text := cmd.Args().First()
	if text == "" {
		return errors.New("query: SQL argument required")
	}
	params, err := connect.Params(cmd.StringSlice("param"))
	if err != nil {
		return err
	}

	conn := cfg.Open(logging.New())
	defer conn.Close()

	unit := dbx.NewCommand(conn, text).
		Timeout(cfg.Timeout).
		RawParams(params...)
	rows, err := dbx.QueryContext(ctx, unit, scanRow)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

// scanRow maps a row into a column-keyed object without knowing the shape
// of the result set up front.
func scanRow(r driver.Row) (map[string]any, error) {
	cols, err := r.Columns()
	if err != nil {
		return nil, err
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := r.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(map[string]any, len(cols))
	for i, col := range cols {
		if b, ok := vals[i].([]byte); ok {
			row[col] = string(b)
			continue
		}
		row[col] = vals[i]
	}
	return row, nil
}
