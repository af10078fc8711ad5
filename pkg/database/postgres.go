package database

import (
	"net"
	"net/url"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/studydash/pkg/config"
)

// NewPostgres connects to a PostgreSQL server for deployments that share the
// store between machines.
func NewPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	return connect(config.DriverPostgres, PostgresDSN(cfg), pool{maxOpen: cfg.MaxOpenConns, maxIdle: cfg.MaxIdleConns})
}

// PostgresDSN renders cfg as a postgres:// URL understood by lib/pq.
func PostgresDSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String()
}
