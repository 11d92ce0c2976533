package storage

import (
	"database/sql"
)

// NewTestDB wraps an already-open connection in a DB struct for testing.
func NewTestDB(sqlDB *sql.DB) *DB {
	return &DB{conn: sqlDB}
}
