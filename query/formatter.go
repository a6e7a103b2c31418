package query

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	FormatTable    OutputFormat = "table"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatYAML     OutputFormat = "yaml"
	FormatMarkdown OutputFormat = "markdown"
)

// Formatter formats query results
type Formatter struct {
	Output OutputFormat
}

// NewFormatter creates a new result formatter
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{Output: format}
}

// Format writes the result in the configured format.
func (f *Formatter) Format(result *QueryResult, output io.Writer) error {
	switch f.Output {
	case FormatTable:
		return f.formatAsTable(result, output)
	case FormatJSON:
		return f.formatAsJSON(result, output)
	case FormatCSV:
		return f.formatAsCSV(result, output)
	case FormatYAML:
		return f.formatAsYAML(result, output)
	case FormatMarkdown:
		return f.formatAsMarkdown(result, output)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, f.Output)
	}
}

func (f *Formatter) formatAsTable(result *QueryResult, output io.Writer) error {
	if len(result.Rows) == 0 {
		fmt.Fprintln(output, "No results")
		return nil
	}

	w := tabwriter.NewWriter(output, 1, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(result.Columns, "\t"))
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(output, "%d rows (%v)\n", result.Count, result.Duration)

	return nil
}

func (f *Formatter) formatAsJSON(result *QueryResult, output io.Writer) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(rowsToMaps(result.Columns, result.Rows))
}

func (f *Formatter) formatAsCSV(result *QueryResult, output io.Writer) error {
	w := csv.NewWriter(output)
	if err := w.Write(result.Columns); err != nil {
		return err
	}
	for _, row := range result.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

func (f *Formatter) formatAsYAML(result *QueryResult, output io.Writer) error {
	data, err := yaml.Marshal(rowsToMaps(result.Columns, result.Rows))
	if err != nil {
		return err
	}
	_, err = output.Write(data)

	return err
}

func (f *Formatter) formatAsMarkdown(result *QueryResult, output io.Writer) error {
	fmt.Fprintln(output, "| "+strings.Join(result.Columns, " | ")+" |")

	seps := make([]string, len(result.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintln(output, "| "+strings.Join(seps, " | ")+" |")

	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		fmt.Fprintln(output, "| "+strings.Join(cells, " | ")+" |")
	}

	return nil
}

func rowsToMaps(columns []string, rows [][]any) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]any, len(columns))
		for i, col := range columns {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		out = append(out, m)
	}
	return out
}

func cellString(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}
