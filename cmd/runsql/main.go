package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rizesql/dbx/cmd/runsql/batch"
	"github.com/rizesql/dbx/cmd/runsql/exec"
	"github.com/rizesql/dbx/cmd/runsql/query"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "runsql",
		Usage: "Run SQL statements through the dbx execution layer",
		Commands: []*cli.Command{
			exec.Cmd,
			query.Cmd,
			batch.Cmd,
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
