package sqlite

import "time"

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.:
	//   "file:db2schema.db?cache=shared"
	//   "db2schema.db" (interpreted by the driver)
	DSN string

	// ForeignKeys turns on PRAGMA foreign_keys. Defaults to true.
	ForeignKeys bool

	// PingTimeout bounds the connectivity check on open.
	PingTimeout time.Duration
}
