package batch

import (
	"context"
	"errors"

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

	stmts := cmd.Args().Slice()
	if len(stmts) == 0 {
		return errors.New("batch: at least one SQL statement required")
	}

	logger := logging.New()
	conn := cfg.Open(logger)
	defer conn.Close()

	_, err = dbx.BatchContext(ctx, conn, func(ctx context.Context, tx driver.Transaction) (struct{}, error) {
		for _, text := range stmts {
			unit := dbx.NewCommandTx(tx, text).Timeout(cfg.Timeout)
			if err := dbx.ExecContext(ctx, unit); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	logger.Info("batch committed", "statements", len(stmts))
	return nil
}
