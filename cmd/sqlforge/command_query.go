package main

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/sqlforge/sqlforge"
	"github.com/sqlforge/sqlforge/query"
	"github.com/sqlforge/sqlforge/translate"
)

// QueryCmd renders a SQL template and executes it against a configured
// database environment.
type QueryCmd struct {
	Template    string `arg:"" help:"Template file path, or - for stdin"`
	Params      string `help:"YAML file holding the ordered argument list" short:"p"`
	Environment string `help:"Database environment to use from config" default:"development" short:"e"`
	Format      string `help:"Output format (table, json, csv, yaml, markdown)" default:"table" short:"f"`
	Timeout     string `help:"Query timeout duration" default:"30s"`
	Force       bool   `help:"Execute UPDATE/DELETE without a WHERE clause"`
}

func (cmd *QueryCmd) Run(ctx *Context) error {
	config, err := sqlforge.LoadConfig(ctx.Config)
	if err != nil {
		return err
	}

	database, err := config.DatabaseFor(cmd.Environment)
	if err != nil {
		return err
	}

	timeout, err := time.ParseDuration(cmd.Timeout)
	if err != nil {
		return err
	}

	template, err := readTemplate(cmd.Template)
	if err != nil {
		return err
	}

	args, err := readParams(cmd.Params)
	if err != nil {
		return err
	}

	translator, err := translate.New(query.DialectFromDriver(database.Driver),
		translate.WithResolver(translate.MapResolver(config.Substitutions)))
	if err != nil {
		return err
	}

	db, err := query.Open(database.Driver, database.Connection)
	if err != nil {
		return err
	}
	defer db.Close()

	executor := query.NewExecutor(db, translator, query.Options{
		Timeout:               timeout,
		MaxRows:               config.Query.MaxRows,
		ExecuteDangerousQuery: cmd.Force,
	})

	result, err := executor.Query(context.Background(), append([]any{template}, args...)...)
	if err != nil {
		return err
	}

	if ctx.Verbose && !ctx.Quiet {
		color.Cyan("-- %s", result.SQL)
	}

	formatter := query.NewFormatter(query.OutputFormat(cmd.Format))

	return formatter.Format(result, os.Stdout)
}
