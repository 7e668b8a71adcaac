package batch

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/rizesql/dbx/cmd/runsql/connect"
)

var Cmd = &cli.Command{
	Name:      "batch",
	Usage:     "Execute statements in one transaction, all-or-nothing",
	ArgsUsage: "SQL [SQL ...]",
	Flags:     connect.Flags(),
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return run(ctx, cmd)
	},
}
