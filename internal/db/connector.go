package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// Pool configuration for PostgreSQL. A conversion run executes one script
// at a time, so a single connection is enough.
const (
	DefaultMaxConns = 1
	DefaultMinConns = 1
)

// NewConnector is a factory function that creates the appropriate Connector
// for the destination's kind.
func NewConnector(dest qcsv.Destination) (qcsv.Connector, error) {
	switch dest.Kind {
	case qcsv.DestinationSQLite:
		return &SQLiteConnector{path: dest.Target}, nil
	case qcsv.DestinationPostgres:
		c, err := newPostgresConnector(dest)
		if err != nil {
			return nil, err
		}
		return c, nil
	case qcsv.DestinationMySQL:
		return &MySQLConnector{dsn: dest.Target}, nil
	default:
		return nil, fmt.Errorf("destination %s has no store: %w", dest.Kind, qcsv.ErrInvalidConfig)
	}
}

// SQLiteConnector opens a SQLite database file, creating it if absent.
type SQLiteConnector struct {
	path string
}

// Connect implements qcsv.Connector.
func (c *SQLiteConnector) Connect(ctx context.Context) (qcsv.Store, error) {
	db, err := sql.Open("sqlite", c.path)
	if err != nil {
		return nil, wrapConnectionError(err, c.path)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapConnectionError(err, c.path)
	}
	return NewSQLStore(db), nil
}

// MySQLConnector opens a MySQL database. Multi-statement execution and the
// ANSI_QUOTES sql_mode are always enabled so that rendered scripts run
// as one batch with double-quoted column names.
type MySQLConnector struct {
	dsn string
}

// Connect implements qcsv.Connector.
func (c *MySQLConnector) Connect(ctx context.Context) (qcsv.Store, error) {
	cfg, err := mysql.ParseDSN(c.dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL DSN: %w: %w", qcsv.ErrInvalidConfig, err)
	}
	cfg.MultiStatements = true
	if cfg.Params == nil {
		cfg.Params = make(map[string]string)
	}
	cfg.Params["sql_mode"] = "'ANSI_QUOTES'"

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL DSN: %w: %w", qcsv.ErrInvalidConfig, err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapConnectionError(err, cfg.Addr)
	}
	return NewSQLStore(db), nil
}

// PostgresConnector opens a pgx pool. With cloud authentication the
// password comes from a TokenProvider on every new connection, or the
// Cloud SQL connector dials the instance with IAM credentials.
type PostgresConnector struct {
	connString    string
	auth          qcsv.CloudAuth
	tokenProvider TokenProvider
}

func newPostgresConnector(dest qcsv.Destination) (*PostgresConnector, error) {
	c := &PostgresConnector{connString: dest.Target, auth: dest.Auth}

	provider, err := newTokenProvider(dest)
	if err != nil {
		return nil, fmt.Errorf("%s auth: %w: %w", dest.Auth.Method, qcsv.ErrInvalidConfig, err)
	}
	c.tokenProvider = provider
	return c, nil
}

// newTokenProvider returns the provider for token-based methods, or nil.
func newTokenProvider(dest qcsv.Destination) (TokenProvider, error) {
	auth := dest.Auth
	switch auth.Method {
	case qcsv.AuthMethodAWSIAM:
		cc, err := pgxpool.ParseConfig(dest.Target)
		if err != nil {
			return nil, err
		}
		endpoint := net.JoinHostPort(cc.ConnConfig.Host, strconv.Itoa(int(cc.ConnConfig.Port)))
		p, err := NewAWSIAMTokenProvider(endpoint, auth.AWSRegion, cc.ConnConfig.User)
		if err != nil {
			return nil, err
		}
		return p, nil
	case qcsv.AuthMethodAzureEntraID:
		var (
			p   *AzureTokenProvider
			err error
		)
		if auth.AzureTenantID != "" && auth.AzureClientID != "" && auth.AzureClientSecret != "" {
			p, err = NewAzureServicePrincipalProvider(auth.AzureTenantID, auth.AzureClientID, auth.AzureClientSecret)
		} else {
			p, err = NewAzureDefaultCredentialProvider()
		}
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, nil
	}
}

// Connect implements qcsv.Connector.
func (c *PostgresConnector) Connect(ctx context.Context) (qcsv.Store, error) {
	poolConfig, err := pgxpool.ParseConfig(c.connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w: %w", qcsv.ErrInvalidConfig, err)
	}
	configurePool(poolConfig)

	if c.tokenProvider != nil {
		useTokenPassword(poolConfig, c.tokenProvider)
	}

	addr := poolConfig.ConnConfig.Host
	var closers []io.Closer
	if c.auth.Method == qcsv.AuthMethodGoogleIAM {
		dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create Cloud SQL dialer: %w", qcsv.ErrConnectionFailed, err)
		}
		useCloudSQLDialer(poolConfig, dialer, c.auth.GCPInstance)
		addr = c.auth.GCPInstance
		closers = append(closers, dialer)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		closeAll(closers)
		return nil, wrapConnectionError(err, addr)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		closeAll(closers)
		return nil, wrapConnectionError(err, addr)
	}
	return NewPgStore(pool, closers...), nil
}

// cloudSQLDialer is the part of *cloudsqlconn.Dialer the pool needs.
type cloudSQLDialer interface {
	Dial(ctx context.Context, icn string, opts ...cloudsqlconn.DialOption) (net.Conn, error)
}

// useCloudSQLDialer routes every pool connection through the Cloud SQL
// connector. It provides TLS itself, so pgx must not negotiate SSL.
func useCloudSQLDialer(poolConfig *pgxpool.Config, dialer cloudSQLDialer, instance string) {
	poolConfig.ConnConfig.TLSConfig = nil
	poolConfig.ConnConfig.Fallbacks = nil
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, instance)
	}
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	// Scripts hold many statements; only the simple protocol accepts them.
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
}

// wrapConnectionError marks err as a connection failure and adds guidance
// for the common causes.
func wrapConnectionError(err error, addr string) error {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused by %s

Possible causes:
  - The database server is not running
  - Wrong host or port

Original error: %w`, qcsv.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`%w: cannot resolve host %q

Original error: %w`, qcsv.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "password authentication failed") || strings.Contains(errStr, "access denied"):
		return fmt.Errorf(`%w: authentication failed

Possible causes:
  - Wrong password
  - Wrong username
  - User does not have access to the database

Original error: %w`, qcsv.ErrConnectionFailed, err)

	case strings.Contains(errStr, "unable to open database file") || strings.Contains(errStr, "out of memory (14)"):
		return fmt.Errorf(`%w: cannot open SQLite file %q

Possible causes:
  - The parent directory does not exist
  - No write permission

Original error: %w`, qcsv.ErrConnectionFailed, addr, err)

	default:
		return fmt.Errorf("%w: %s: %w", qcsv.ErrConnectionFailed, addr, err)
	}
}
