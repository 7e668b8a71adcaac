package exec

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/rizesql/dbx"
	"github.com/rizesql/dbx/cmd/runsql/connect"
	"github.com/rizesql/dbx/internal/o11y/logging"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := connect.NewConfig(cmd)
	if err != nil {
		return err
	}

	text := cmd.Args().First()
	if text == "" {
		return errors.New("exec: SQL argument required")
	}
	params, err := connect.Params(cmd.StringSlice("param"))
	if err != nil {
		return err
	}

	logger := logging.New()
	conn := cfg.Open(logger)
	defer conn.Close()

	unit := dbx.NewCommand(conn, text).
		Timeout(cfg.Timeout).
		RawParams(params...)
	if err := dbx.ExecContext(ctx, unit); err != nil {
		return err
	}

	logger.Info("statement executed")
	return nil
}
