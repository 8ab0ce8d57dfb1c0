package types

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds the resolved settings for a tabview session.
type Config struct {
	StateFile string `json:"state_file" yaml:"state_file"`
	Driver    string `json:"driver" yaml:"driver"`
	DSN       string `json:"dsn" yaml:"dsn"`
	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
	Plain     bool   `json:"plain" yaml:"plain"`
}

// Supported relational drivers, as registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config validation errors.
var (
	ErrDriverUnknown    = errors.New("unknown driver")
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
)

// knownDrivers lists the drivers that Validate accepts.
var knownDrivers = map[string]bool{
	DriverSQLite:   true,
	DriverMySQL:    true,
	DriverPgx:      true,
	DriverPostgres: true,
}

// logLevels maps every accepted spelling to its canonical level name.
var logLevels = map[string]string{
	"debug":   "debug",
	"info":    "info",
	"warn":    "warn",
	"warning": "warn",
	"error":   "error",
}

// CanonicalLogLevel returns the canonical name for level, matched case
// insensitively. The empty level is returned as is. Returns
// ErrLogLevelUnknown for anything else.
func CanonicalLogLevel(level string) (string, error) {
	if level == "" {
		return "", nil
	}
	name, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrLogLevelUnknown, level)
	}
	return name, nil
}

// KnownDriver reports whether name is a supported driver.
func KnownDriver(name string) bool {
	return knownDrivers[name]
}

// Validate checks that the Config is well-formed. Empty fields are allowed
// and mean "use the default".
func (c Config) Validate() error {
	if c.Driver != "" && !knownDrivers[c.Driver] {
		return ErrDriverUnknown
	}
	if _, err := CanonicalLogLevel(c.LogLevel); err != nil {
		return err
	}
	if f := strings.ToLower(c.LogFormat); f != "" && f != LogFormatText && f != LogFormatJSON {
		return ErrLogFormatUnknown
	}
	return nil
}
