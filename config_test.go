package sqlforge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sqlforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DialectSQLite, config.DialectOrDefault())
	assert.Equal(t, 30, config.Query.TimeoutSeconds)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
dialect: postgres
databases:
  development:
    driver: pgx
    connection: "postgres://localhost:5432/app"
substitutions:
  prefix: app_
query:
  timeout_seconds: 10
  max_rows: 500
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DialectPostgres, config.DialectOrDefault())
	assert.Equal(t, "app_", config.Substitutions["prefix"])
	assert.Equal(t, 10, config.Query.TimeoutSeconds)
	assert.Equal(t, 500, config.Query.MaxRows)

	db, err := config.DatabaseFor("development")
	require.NoError(t, err)
	assert.Equal(t, "pgx", db.Driver)
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_DB_NAME", "app")

	path := writeConfig(t, `
dialect: postgres
databases:
  development:
    driver: pgx
    connection: "postgres://${TEST_DB_HOST}:5432/$TEST_DB_NAME"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	db, err := config.DatabaseFor("development")
	require.NoError(t, err)
	assert.Equal(t, "postgres://db.internal:5432/app", db.Connection)
}

func TestLoadConfigValidation(t *testing.T) {
	for name, content := range map[string]string{
		"bad dialect": `
dialect: oracle
`,
		"missing driver": `
databases:
  development:
    connection: "postgres://localhost/app"
`,
		"missing connection": `
databases:
  development:
    driver: pgx
`,
		"negative timeout": `
query:
  timeout_seconds: -1
`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.ErrorIs(t, err, ErrConfigValidation)
		})
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
dialects: postgres
`))
	assert.Error(t, err)
}

func TestDatabaseForUnknownEnvironment(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	_, err = config.DatabaseFor("production")
	assert.True(t, errors.Is(err, ErrDatabaseNotConfigured))
}
