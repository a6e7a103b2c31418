package query

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func sampleResult() *QueryResult {
	return &QueryResult{
		SQL:     "SELECT id, name FROM users",
		Columns: []string{"id", "name"},
		Rows: [][]any{
			{1, "alice"},
			{2, nil},
		},
		Count: 2,
	}
}

func TestFormatCSV(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatCSV).Format(sampleResult(), &buf)
	assert.NoError(t, err)
	assert.Equal(t, "id,name\n1,alice\n2,NULL\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatJSON).Format(sampleResult(), &buf)
	assert.NoError(t, err)

	lines := strings.TrimSpace(buf.String())
	assert.Contains(t, lines, `"name": "alice"`)
	assert.Contains(t, lines, `"name": null`)
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatYAML).Format(sampleResult(), &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "name: alice")
}

func TestFormatMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatMarkdown).Format(sampleResult(), &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "| id | name |", lines[0])
	assert.Equal(t, "| --- | --- |", lines[1])
	assert.Equal(t, "| 1 | alice |", lines[2])
	assert.Equal(t, "| 2 | NULL |", lines[3])
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatTable).Format(sampleResult(), &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "2 rows")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatTable).Format(&QueryResult{Columns: []string{"id"}}, &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No results")
}

func TestFormatUnknown(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter("xml").Format(sampleResult(), &buf)
	assert.True(t, errors.Is(err, ErrInvalidOutputFormat))
}
