package dbclient

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// buildMySQLDSN normalizes a MySQL DSN so timestamps scan into time.Time and
// text round-trips as utf8mb4.
func buildMySQLDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN(), nil
}
