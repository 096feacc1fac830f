package dbclient

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// buildPostgresDSN accepts either a postgres:// URL or a key=value DSN and
// returns the key=value form, defaulting sslmode to disable.
func buildPostgresDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return "", fmt.Errorf("parse postgres url: %w", err)
		}
		dsn = converted
	}
	if !strings.Contains(dsn, "sslmode=") {
		dsn = strings.TrimSpace(dsn + " sslmode=disable")
	}
	return dsn, nil
}
