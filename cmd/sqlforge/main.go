package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
)

var version = "dev"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
}

// CLI represents the command line interface structure
type CLI struct {
	Config  string `help:"Configuration file path" default:"sqlforge.yaml" short:"c"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Suppress non-essential output" short:"q"`

	Translate TranslateCmd `cmd:"" help:"Render a SQL template with arguments"`
	Query     QueryCmd     `cmd:"" help:"Render a SQL template and execute it"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Printf("sqlforge %s\n", version)
	return nil
}

func main() {
	var cli CLI

	parser := kong.Parse(&cli,
		kong.Name("sqlforge"),
		kong.Description("SQL templating and translation toolkit"),
		kong.UsageOnError(),
	)

	err := parser.Run(&Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
	})
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
