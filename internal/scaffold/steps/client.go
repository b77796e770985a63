package steps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
	EngineMongoDB  = "mongodb"
)

var ErrUnsupportedEngine = errors.New("unsupported database engine")

// DatabaseOptions describes a server connection parsed from a database URL.
type DatabaseOptions struct {
	Engine        string
	Host          string
	Port          string
	Username      string
	Password      string
	Database      string
	Params        url.Values
	MaintenanceDB string
	Timeout       time.Duration
}

// Redacted renders the connection for logs without the password.
func (o DatabaseOptions) Redacted() string {
	user := o.Username
	if user != "" {
		user += "@"
	}
	return fmt.Sprintf("%s://%s%s/%s", o.Engine, user, net.JoinHostPort(o.Host, o.Port), o.Database)
}

// DatabaseClient creates databases on a server.
type DatabaseClient interface {
	Ping(ctx context.Context) error
	// CreateDatabase reports created=false when the database already existed.
	CreateDatabase(ctx context.Context, name string) (created bool, err error)
	Close() error
}

type DatabaseClientFactory func(ctx context.Context, opts DatabaseOptions) (DatabaseClient, error)

// DefaultDatabaseClientFactory connects with pgx for postgres and
// go-sql-driver for mysql.
func DefaultDatabaseClientFactory(ctx context.Context, opts DatabaseOptions) (DatabaseClient, error) {
	switch opts.Engine {
	case EnginePostgres:
		return newPostgresClient(ctx, opts)
	case EngineMySQL:
		return newMySQLClient(opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEngine, opts.Engine)
	}
}

// ParseDatabaseURL parses a DATABASE_URL style connection string.
func ParseDatabaseURL(raw string) (DatabaseOptions, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return DatabaseOptions{}, fmt.Errorf("parsing database url: %w", err)
	}

	var opts DatabaseOptions
	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		opts.Engine = EnginePostgres
		opts.Port = "5432"
	case "mysql", "mariadb":
		opts.Engine = EngineMySQL
		opts.Port = "3306"
	case "mongodb", "mongodb+srv":
		opts.Engine = EngineMongoDB
		opts.Port = "27017"
	case "":
		return DatabaseOptions{}, fmt.Errorf("database url %q has no scheme", raw)
	default:
		return DatabaseOptions{}, fmt.Errorf("%w: %s", ErrUnsupportedEngine, u.Scheme)
	}

	opts.Host = u.Hostname()
	if opts.Host == "" {
		opts.Host = "localhost"
	}
	if port := u.Port(); port != "" {
		opts.Port = port
	}
	if u.User != nil {
		opts.Username = u.User.Username()
		opts.Password, _ = u.User.Password()
	}
	opts.Database = strings.TrimPrefix(u.Path, "/")
	opts.Params = u.Query()

	return opts, nil
}

type postgresClient struct {
	conn *pgx.Conn
}

func newPostgresClient(ctx context.Context, opts DatabaseOptions) (*postgresClient, error) {
	maintenance := opts.MaintenanceDB
	if maintenance == "" {
		maintenance = "postgres"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(opts.Host, opts.Port),
		Path:     "/" + maintenance,
		RawQuery: opts.Params.Encode(),
	}
	if opts.Username != "" {
		if opts.Password != "" {
			u.User = url.UserPassword(opts.Username, opts.Password)
		} else {
			u.User = url.User(opts.Username)
		}
	}

	cfg, err := pgx.ParseConfig(u.String())
	if err != nil {
		return nil, fmt.Errorf("parsing postgres config: %w", err)
	}
	if opts.Timeout > 0 {
		cfg.ConnectTimeout = opts.Timeout
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &postgresClient{conn: conn}, nil
}

func (c *postgresClient) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

func (c *postgresClient) CreateDatabase(ctx context.Context, name string) (bool, error) {
	_, err := c.conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize())
	if err == nil {
		return true, nil
	}
	if IsDatabaseExistsError(err) {
		return false, nil
	}
	return false, err
}

func (c *postgresClient) Close() error {
	return c.conn.Close(context.Background())
}

type mysqlClient struct {
	db *sql.DB
}

func newMySQLClient(opts DatabaseOptions) (*mysqlClient, error) {
	cfg := mysql.NewConfig()
	cfg.User = opts.Username
	cfg.Passwd = opts.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(opts.Host, opts.Port)
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("configuring mysql connector: %w", err)
	}
	return &mysqlClient{db: sql.OpenDB(connector)}, nil
}

func (c *mysqlClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *mysqlClient) CreateDatabase(ctx context.Context, name string) (bool, error) {
	var existing string
	err := c.db.QueryRowContext(ctx,
		"SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?", name,
	).Scan(&existing)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("checking for database: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+quoteMySQLIdentifier(name)); err != nil {
		if IsDatabaseExistsError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *mysqlClient) Close() error {
	return c.db.Close()
}

func quoteMySQLIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// IsDatabaseExistsError recognises "database already exists" from either
// server.
func IsDatabaseExistsError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P04"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1007
	}
	return false
}
