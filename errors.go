package sqlforge

import "errors"

// Common errors used throughout the sqlforge package
var (
	// ErrAloneQuote is returned when a literal fragment contains an unmatched quote.
	ErrAloneQuote = errors.New("alone quote in SQL fragment")
	// ErrExtraPlaceholder indicates more ? tokens than remaining arguments.
	ErrExtraPlaceholder = errors.New("extra placeholder, no argument left to consume")
	// ErrMissingArgument indicates a %tag with no argument left to consume.
	ErrMissingArgument = errors.New("no argument left for modifier")
	// ErrUnknownModifier indicates a %tag not present in the modifier table.
	ErrUnknownModifier = errors.New("unknown modifier")
	// ErrTypeMismatch indicates a value incompatible with its modifier.
	ErrTypeMismatch = errors.New("value type does not match modifier")
	// ErrRowShapeMismatch indicates a multi-row insert row whose key set differs from the first row.
	ErrRowShapeMismatch = errors.New("row key shape differs from first row")
	// ErrNumericOverflow indicates a numeric value that cannot be represented as an integer literal.
	ErrNumericOverflow = errors.New("numeric value too large for integer")
	// ErrSubstitutionNotFound indicates a :name: token with no binding in the substitution map.
	ErrSubstitutionNotFound = errors.New("substitution not found")
	// ErrEmptyIdentifier indicates an identifier modifier received an empty name.
	ErrEmptyIdentifier = errors.New("empty identifier")

	// ErrUnknownClause indicates a clause name outside the active command's mask
	// that is not a recognized trailing keyword.
	ErrUnknownClause = errors.New("unknown clause for command")
	// ErrNoCommand indicates an export was requested before any clause call.
	ErrNoCommand = errors.New("no command has been started")
	// ErrUnknownCommand indicates a first clause keyword that does not start a command.
	ErrUnknownCommand = errors.New("keyword does not start a known command")

	// ErrUnknownDialect indicates an unsupported dialect name.
	ErrUnknownDialect = errors.New("unknown dialect")
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrConfigFileNotFound indicates a configuration file could not be located.
	ErrConfigFileNotFound = errors.New("configuration file not found")
	// ErrDatabaseNotConfigured indicates a database environment missing from config.
	ErrDatabaseNotConfigured = errors.New("database environment not configured")
)
