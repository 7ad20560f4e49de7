// Command db2schema prepares DB2 (and compatible) databases for test runs:
// it drops the tables of the configured models and recreates them with the
// DB2 schema adapter.
//
// Usage:
//
//	db2schema -c db2schema.yaml create-test-db
//	db2schema -c db2schema.yaml sql
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the command-line grammar.
type CLI struct {
	Globals

	CreateTestDB  createTestDBCmd  `cmd:"" name:"create-test-db" help:"Drop the model tables and recreate them."`
	DestroyTestDB destroyTestDBCmd `cmd:"" name:"destroy-test-db" help:"Resolve the test database name; nothing is dropped."`
	SQL           sqlCmd           `cmd:"" name:"sql" help:"Print the DDL for every model without connecting."`
	Tables        tablesCmd        `cmd:"" help:"List model tables present in the database."`
	Validate      validateCmd      `cmd:"" help:"Validate the configuration and models file, then exit."`
	Kinds         kindsCmd         `cmd:"" help:"List the registered storage kinds."`
}

// Globals are flags shared by every command.
type Globals struct {
	Config         string `name:"config" short:"c" default:"db2schema.yaml" type:"path" help:"Configuration file (JSON or YAML)."`
	Verbose        int    `name:"verbose" short:"v" type:"counter" help:"Raise verbosity; repeat for more (overrides runtime.verbosity)."`
	Color          string `name:"color" enum:"auto,always,never" default:"auto" help:"Colorize SQL output (auto, always, never)."`
	MetricsBackend string `name:"metrics-backend" help:"Metrics backend (none, pushgateway, datadog); overrides config and METRICS_BACKEND."`
	PushgatewayURL string `name:"pushgateway-url" help:"Pushgateway base URL; overrides metrics.pushgateway_url."`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "db2schema: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and executes the selected command.
func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("db2schema"),
		kong.Description("Test database setup for the DB2 schema adapter."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cli.Globals.stdout = stdout
	cli.Globals.stderr = stderr
	return kctx.Run(&cli.Globals)
}
