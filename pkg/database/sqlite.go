package database

import (
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/noah-isme/studydash/pkg/config"
)

func init() {
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// NewSQLite opens the embedded single-file store. Foreign keys are enabled on
// every connection so cascades and restrictions hold.
func NewSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite requires a database path")
	}
	// One connection: a single writer never sees SQLITE_BUSY.
	return connect(config.DriverSQLite, SQLiteDSN(cfg.Path), pool{maxOpen: 1})
}

// SQLiteDSN builds the modernc file URI with the connection pragmas.
func SQLiteDSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + params.Encode()
}
