package db

import "database/sql"

// DB wraps the shared sql handle so callers depend on this package,
// not on a raw *sql.DB.
type DB struct {
	*sql.DB
}
