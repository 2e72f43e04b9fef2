package postgres

//nolint:revive
import (
	"errors"
	"net"
	"net/url"
	"time"
	"turfbook/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type dsn struct {
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
	timezone string
}

func (d dsn) String() string {
	query := url.Values{}
	query.Set("sslmode", d.sslMode)

	if d.timezone != "" {
		query.Set("timezone", d.timezone)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.username, d.password),
		Host:     net.JoinHostPort(d.host, d.port),
		Path:     d.dbName,
		RawQuery: query.Encode(),
	}

	return u.String()
}

func New(config *config.Config) *Connection {
	conn := &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Msg("Failed to connect to database after retries")
	}

	return conn
}

// Close releases both pools.
func (c *Connection) Close() error {
	var errs []error

	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// WriteDSN builds the connection string for the primary database, used by migrations as well.
func WriteDSN(config config.Config) string {
	return dsn{
		username: config.DB.Postgres.Write.Username,
		password: config.DB.Postgres.Write.Password,
		host:     config.DB.Postgres.Write.Host,
		port:     config.DB.Postgres.Write.Port,
		dbName:   getDBName(config, config.DB.Postgres.Write.Name),
		sslMode:  config.DB.Postgres.Write.SSLMode,
		timezone: config.DB.Postgres.Write.Timezone,
	}.String()
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection("write", WriteDSN(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	descriptor := dsn{
		username: config.DB.Postgres.Read.Username,
		password: config.DB.Postgres.Read.Password,
		host:     config.DB.Postgres.Read.Host,
		port:     config.DB.Postgres.Read.Port,
		dbName:   getDBName(config, config.DB.Postgres.Read.Name),
		sslMode:  config.DB.Postgres.Read.SSLMode,
		timezone: config.DB.Postgres.Read.Timezone,
	}

	return CreatePostgresConnection("read", descriptor.String(), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)
}

// CreatePostgresConnection connects with up to maxRetry attempts, waiting waitTime seconds between them.
func CreatePostgresConnection(name, descriptor string, maxRetry, waitTime int) *sqlx.DB {
	maxRetry = max(maxRetry, 1)

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.Info().Str("name", name).Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
