package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

const (
	sqliteScheme = "sqlite://"
	mysqlScheme  = "mysql://"
)

// ParseDestination classifies an output destination string.
//
// Returns an error wrapping qcsv.ErrInvalidConfig when a PostgreSQL or MySQL
// connection string cannot be parsed, or a SQLite destination names no file.
func ParseDestination(s string) (qcsv.Destination, error) {
	raw := s
	s = strings.TrimSpace(s)

	switch {
	case s == "" || s == qcsv.ConsoleDestination:
		return qcsv.Destination{Kind: qcsv.DestinationConsole, Raw: raw}, nil

	case strings.HasPrefix(s, "postgresql://") || strings.HasPrefix(s, "postgres://"):
		if _, err := pgxpool.ParseConfig(s); err != nil {
			return qcsv.Destination{}, fmt.Errorf("invalid PostgreSQL URI: %w: %w", qcsv.ErrInvalidConfig, err)
		}
		return qcsv.Destination{Kind: qcsv.DestinationPostgres, Target: s, Raw: raw}, nil

	case strings.HasPrefix(s, mysqlScheme):
		dsn := strings.TrimPrefix(s, mysqlScheme)
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return qcsv.Destination{}, fmt.Errorf("invalid MySQL DSN: %w: %w", qcsv.ErrInvalidConfig, err)
		}
		return qcsv.Destination{Kind: qcsv.DestinationMySQL, Target: dsn, Raw: raw}, nil

	default:
		path := strings.TrimPrefix(s, sqliteScheme)
		if path == "" || path == "file:" {
			return qcsv.Destination{}, fmt.Errorf("SQLite destination %q names no file: %w", raw, qcsv.ErrInvalidConfig)
		}
		return qcsv.Destination{Kind: qcsv.DestinationSQLite, Target: path, Raw: raw}, nil
	}
}

// Redact returns a form of the destination safe to print: passwords are
// masked and the console is shown as "stdout".
func Redact(dest qcsv.Destination) string {
	switch dest.Kind {
	case qcsv.DestinationConsole:
		return "stdout"
	case qcsv.DestinationPostgres:
		u, err := url.Parse(dest.Target)
		if err != nil {
			return "postgres://"
		}
		return u.Redacted()
	case qcsv.DestinationMySQL:
		cfg, err := mysql.ParseDSN(dest.Target)
		if err != nil {
			return mysqlScheme
		}
		if cfg.Passwd != "" {
			cfg.Passwd = "xxxxx"
		}
		return mysqlScheme + cfg.FormatDSN()
	default:
		return dest.Target
	}
}

// TargetName returns the short name a user confirms destructive operations
// with: the database name for servers and the file path for SQLite.
func TargetName(dest qcsv.Destination) string {
	switch dest.Kind {
	case qcsv.DestinationConsole:
		return "stdout"
	case qcsv.DestinationPostgres:
		cfg, err := pgxpool.ParseConfig(dest.Target)
		if err != nil || cfg.ConnConfig.Database == "" {
			return Redact(dest)
		}
		return cfg.ConnConfig.Database
	case qcsv.DestinationMySQL:
		cfg, err := mysql.ParseDSN(dest.Target)
		if err != nil || cfg.DBName == "" {
			return Redact(dest)
		}
		return cfg.DBName
	default:
		return dest.Target
	}
}
