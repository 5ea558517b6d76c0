package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// signalsSchemaVersion is stored in PRAGMA user_version. Version 1 is the
// signals table keyed by id with a seq column for display order.
const signalsSchemaVersion = 1

// connPragmas run on every open. Writes are whole-table replacements from a
// single shell, so WAL with NORMAL sync is durable enough.
var connPragmas = []struct{ name, value string }{
	{"journal_mode", "WAL"},
	{"synchronous", "NORMAL"},
	{"busy_timeout", "5000"},
}

// SQLiteBackend keeps the signal registry in a SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens the signal database at path, creating it and the signals
// table when missing. Opening an existing database leaves its rows alone.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open signal database %s: %w", path, err)
	}
	if err := initSignalDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open signal database %s: %w", path, err)
	}
	return &SQLiteBackend{db: db}, nil
}

func initSignalDB(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return err
	}

	// One connection keeps pragmas and user_version on the same handle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, p := range connPragmas {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("set %s: %w", p.name, err)
		}
	}
	return migrateSignals(db)
}

// migrateSignals creates the signals table and stamps the schema version.
// A database written by a newer signalctl is refused rather than downgraded.
func migrateSignals(db *sql.DB) error {
	version, err := readPragma(db, "user_version")
	if err != nil {
		return err
	}
	var have int
	if _, err := fmt.Sscan(version, &have); err != nil {
		return fmt.Errorf("parse user_version %q: %w", version, err)
	}
	if have > signalsSchemaVersion {
		return fmt.Errorf("signal schema v%d is newer than supported v%d", have, signalsSchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create signals table: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", signalsSchemaVersion)); err != nil {
		return fmt.Errorf("stamp user_version: %w", err)
	}
	return nil
}

func readPragma(db *sql.DB, name string) (string, error) {
	var value string
	if err := db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return value, nil
}

// Close releases the database handle.
func (b *SQLiteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
