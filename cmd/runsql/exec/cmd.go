package exec

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/rizesql/dbx/cmd/runsql/connect"
)

var Cmd = &cli.Command{
	Name:      "exec",
	Usage:     "Execute a statement and discard its result",
	ArgsUsage: "SQL",
	Flags: append(connect.Flags(),
		&cli.StringSliceFlag{
			Name:  "param",
			Usage: "Named parameter as name=value (repeatable)",
		},
	),
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return run(ctx, cmd)
	},
}
