// Package connect holds the connection configuration shared by every
// runsql subcommand: flags, an optional YAML config file, and parameter
// parsing.
package connect

import (
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rizesql/dbx/driver"
	"github.com/rizesql/dbx/internal/o11y/logging"
	"github.com/rizesql/dbx/sqld"
)

type Config struct {
	Driver  string        `yaml:"driver"`
	DSN     string        `yaml:"dsn"`
	Timeout time.Duration `yaml:"timeout"`
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML file with driver/dsn/timeout",
		},
		&cli.StringFlag{
			Name:  "driver",
			Usage: "database/sql driver name (sqlite3, mysql)",
			Value: "sqlite3",
		},
		&cli.StringFlag{
			Name:  "dsn",
			Usage: "Data source name",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-command timeout",
			Value: 30 * time.Second,
		},
	}
}

// NewConfig resolves flags over the optional config file; flags win.
func NewConfig(cmd *cli.Command) (Config, error) {
	cfg := Config{
		Driver:  cmd.String("driver"),
		DSN:     cmd.String("dsn"),
		Timeout: cmd.Duration("timeout"),
	}

	if path := cmd.String("config"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		var file Config
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
		if cfg.DSN == "" {
			cfg.DSN = file.DSN
		}
		if !cmd.IsSet("driver") && file.Driver != "" {
			cfg.Driver = file.Driver
		}
		if !cmd.IsSet("timeout") && file.Timeout > 0 {
			cfg.Timeout = file.Timeout
		}
	}

	if cfg.DSN == "" {
		return Config{}, fmt.Errorf("a dsn is required (flag or config file)")
	}
	return cfg, nil
}

func (c Config) Open(logger *logging.Logger) *sqld.Conn {
	return sqld.New(sqld.Config{
		Driver: c.Driver,
		DSN:    c.DSN,
		Logger: logger,
	})
}

// Params parses repeated name=value pairs into raw bindings.
func Params(pairs []string) ([]driver.RawParam, error) {
	ps := make([]driver.RawParam, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q, want name=value", pair)
		}
		ps = append(ps, driver.RawParam{Name: name, Value: value})
	}
	return ps, nil
}
