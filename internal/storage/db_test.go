package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if db.Conn() == nil {
		t.Error("Conn() returned nil")
	}
}

func TestOpen_NilConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Open(nil) error = nil, want config error")
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := Open(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("Failed to open database in nested directory: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestOpen_AutoMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	config := DefaultConfig(dbPath)
	config.AutoMigrate = true

	db, err := Open(config)
	if err != nil {
		t.Fatalf("Failed to open database with auto-migrate: %v", err)
	}
	defer db.Close()

	// Schema tables should exist after migration.
	for _, table := range []string{"parks", "attractions", "trips", "trip_days", "party_members", "activity_ratings", "itinerary_items"} {
		var name string
		err := db.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("Table %s missing after auto-migrate: %v", table, err)
		}
	}
}

func TestNewTestDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open raw connection: %v", err)
	}

	db := NewTestDB(conn)
	defer db.Close()

	if db.Conn() != conn {
		t.Error("Conn() does not return the wrapped connection")
	}
	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestDB_CloseIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	var empty DB
	if err := empty.Close(); err != nil {
		t.Errorf("Close() on zero DB error = %v", err)
	}
}
