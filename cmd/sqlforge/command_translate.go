package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/sqlforge/sqlforge"
	"github.com/sqlforge/sqlforge/translate"
)

// TranslateCmd renders a SQL template file with positional arguments.
type TranslateCmd struct {
	Template string `arg:"" help:"Template file path, or - for stdin"`
	Params   string `help:"YAML file holding the ordered argument list" short:"p"`
	Dialect  string `help:"Override the configured dialect" short:"d"`
}

func (cmd *TranslateCmd) Run(ctx *Context) error {
	config, err := sqlforge.LoadConfig(ctx.Config)
	if err != nil {
		return err
	}

	dialect := config.DialectOrDefault()
	if cmd.Dialect != "" {
		dialect = sqlforge.Dialect(cmd.Dialect)
	}

	template, err := readTemplate(cmd.Template)
	if err != nil {
		return err
	}

	args, err := readParams(cmd.Params)
	if err != nil {
		return err
	}

	translator, err := translate.New(dialect,
		translate.WithResolver(translate.MapResolver(config.Substitutions)))
	if err != nil {
		return err
	}

	sqlText, err := translator.Translate(append([]any{template}, args...)...)
	if err != nil {
		return err
	}

	if ctx.Verbose && !ctx.Quiet {
		color.Cyan("-- dialect: %s", dialect)
	}
	fmt.Println(sqlText)

	return nil
}

func readTemplate(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

// readParams decodes the ordered argument list. The file holds a YAML
// sequence; each entry feeds one modifier or placeholder, in order.
func readParams(path string) ([]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params: %w", err)
	}

	var args []any
	if err := yaml.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("failed to parse params: %w", err)
	}
	return normalizeParams(args), nil
}

// normalizeParams converts yaml.v3 map shapes into the engine's keyed-array
// shape.
func normalizeParams(args []any) []any {
	for i, arg := range args {
		args[i] = normalizeParam(arg)
	}
	return args
}

func normalizeParam(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeParam(item)
		}
		return val
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalizeParam(item)
		}
		return m
	case []any:
		for i, item := range val {
			val[i] = normalizeParam(item)
		}
		return val
	default:
		return v
	}
}
