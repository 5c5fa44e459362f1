package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/loxhness/HospitalManagement/internal/db"
)

// Config holds all runtime settings for the hospital application.
type Config struct {
	Addr string

	// DBDriver is a database/sql driver name: db.DriverSQLite or db.DriverPostgres.
	DBDriver string
	DBDSN    string

	// ReportsDSN points at the database holding the staff/department report
	// schema. Empty means the main database.
	ReportsDSN string

	LogLevel  string
	LogFormat string // "json", "text" or "auto"

	CORSOrigins []string

	CSRFCookie string
	CSRFSecure bool

	AutoMigrate bool
}

// DefaultConfig returns a Config backed by a local SQLite file.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		DBDriver:    db.DriverSQLite,
		DBDSN:       "hospital.db",
		LogLevel:    "info",
		LogFormat:   "auto",
		CSRFCookie:  "hospital_csrf",
		AutoMigrate: true,
	}
}

// Load reads an optional .env file from the working directory and then the
// HOSPITAL_* environment variables, falling back to defaults for any unset
// values. Variables already present in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("HOSPITAL_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("HOSPITAL_DB_DRIVER"); v != "" {
		cfg.DBDriver = v
	}
	if v := os.Getenv("HOSPITAL_DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("HOSPITAL_REPORTS_DSN"); v != "" {
		cfg.ReportsDSN = v
	}
	if v := os.Getenv("HOSPITAL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HOSPITAL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("HOSPITAL_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HOSPITAL_CSRF_COOKIE"); v != "" {
		cfg.CSRFCookie = v
	}
	if v := os.Getenv("HOSPITAL_CSRF_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing HOSPITAL_CSRF_SECURE: %w", err)
		}
		cfg.CSRFSecure = b
	}
	if v := os.Getenv("HOSPITAL_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing HOSPITAL_AUTO_MIGRATE: %w", err)
		}
		cfg.AutoMigrate = b
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BindFlags registers command-line overrides for the most common settings.
// Flags are applied on top of the environment when parsed.
func (c *Config) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.DBDriver, "db-driver", c.DBDriver, "database driver (sqlite or postgres)")
	flags.StringVar(&c.DBDSN, "db", c.DBDSN, "database DSN or SQLite file path")
	flags.StringVar(&c.ReportsDSN, "reports-db", c.ReportsDSN, "DSN of the staff/department report database (defaults to --db)")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (json, text or auto)")
}

// Normalize validates c after flag parsing and maps driver aliases.
func (c *Config) Normalize() error {
	return c.normalize()
}

func (c *Config) normalize() error {
	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "sqlite3":
		c.DBDriver = db.DriverSQLite
	case "postgres", "postgresql", "pgx":
		c.DBDriver = db.DriverPostgres
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	switch c.LogFormat {
	case "json", "text", "auto":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	if c.DBDSN == "" {
		return errors.New("database DSN must not be empty")
	}
	return nil
}

// EffectiveReportsDSN returns the DSN the report queries run against.
func (c Config) EffectiveReportsDSN() string {
	if c.ReportsDSN != "" {
		return c.ReportsDSN
	}
	return c.DBDSN
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
