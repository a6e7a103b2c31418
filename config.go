package sqlforge

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config represents the sqlforge configuration
type Config struct {
	Dialect       string              `yaml:"dialect"`
	Databases     map[string]Database `yaml:"databases"`
	Substitutions map[string]string   `yaml:"substitutions"`
	Query         QueryConfig         `yaml:"query"`
}

// Database represents database connection configuration
type Database struct {
	Driver     string `yaml:"driver"`
	Connection string `yaml:"connection"`
	Schema     string `yaml:"schema"`
	Database   string `yaml:"database"`
}

// QueryConfig represents query execution settings
type QueryConfig struct {
	TimeoutSeconds int  `yaml:"timeout_seconds"`
	MaxRows        int  `yaml:"max_rows"`
	Explain        bool `yaml:"explain"`
}

// LoadConfig loads configuration from the given YAML file. A missing file
// yields the default configuration rather than an error.
func LoadConfig(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

// DialectOrDefault returns the configured dialect, defaulting to sqlite.
func (c *Config) DialectOrDefault() Dialect {
	if c.Dialect == "" {
		return DialectSQLite
	}
	return Dialect(c.Dialect)
}

// DatabaseFor returns the connection config for the named environment.
func (c *Config) DatabaseFor(environment string) (Database, error) {
	db, ok := c.Databases[environment]
	if !ok {
		return Database{}, fmt.Errorf("%w: %s", ErrDatabaseNotConfigured, environment)
	}
	return db, nil
}

func getDefaultConfig() *Config {
	return &Config{
		Dialect:       string(DialectSQLite),
		Databases:     map[string]Database{},
		Substitutions: map[string]string{},
		Query: QueryConfig{
			TimeoutSeconds: 30,
		},
	}
}

func validateConfig(config *Config) error {
	if config.Dialect != "" {
		if _, err := EngineFor(Dialect(config.Dialect)); err != nil {
			return err
		}
	}
	for name, db := range config.Databases {
		if db.Driver == "" {
			return fmt.Errorf("database %q: driver is required", name)
		}
		if db.Connection == "" {
			return fmt.Errorf("database %q: connection is required", name)
		}
	}
	if config.Query.TimeoutSeconds < 0 {
		return fmt.Errorf("query.timeout_seconds must not be negative")
	}
	return nil
}

func applyDefaults(config *Config) {
	if config.Dialect == "" {
		config.Dialect = string(DialectSQLite)
	}
	if config.Substitutions == nil {
		config.Substitutions = map[string]string{}
	}
	if config.Query.TimeoutSeconds == 0 {
		config.Query.TimeoutSeconds = 30
	}
}

func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return err
		}
	}
	return nil
}

var (
	envBraceRe = regexp.MustCompile(`\$\{([^}]+)\}`)
	envBareRe  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

func expandEnvVars(s string) string {
	s = envBraceRe.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envBraceRe.FindStringSubmatch(m)[1])
	})
	return envBareRe.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envBareRe.FindStringSubmatch(m)[1])
	})
}

func expandConfigEnvVars(config *Config) {
	for name, db := range config.Databases {
		db.Connection = expandEnvVars(db.Connection)
		db.Database = expandEnvVars(db.Database)
		db.Schema = expandEnvVars(db.Schema)
		config.Databases[name] = db
	}
	for name, value := range config.Substitutions {
		config.Substitutions[name] = expandEnvVars(value)
	}
}
