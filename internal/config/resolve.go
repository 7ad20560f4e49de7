package config

import (
	"errors"
	"strings"
)

// ErrImproperlyConfigured means no usable database name could be resolved.
var ErrImproperlyConfigured = errors.New("improperly configured")

// TestDatabaseName resolves the database a test run targets: TestName when it
// is non-empty, otherwise Name. Both empty is a configuration error.
func (d *Database) TestDatabaseName() (string, error) {
	if d == nil {
		return "", errors.Join(ErrImproperlyConfigured, errors.New("no database settings"))
	}
	if n := strings.TrimSpace(d.TestName); n != "" {
		return n, nil
	}
	if n := strings.TrimSpace(d.Name); n != "" {
		return n, nil
	}
	return "", errors.Join(ErrImproperlyConfigured, errors.New("the database name doesn't exist"))
}

// AcceptsDB2DDL reports whether the backend can execute the DDL the DB2
// adapter generates. Other kinds are limited to introspection and cleanup.
func (d *Database) AcceptsDB2DDL() bool {
	switch strings.TrimSpace(d.Kind) {
	case "db2", "sqlite":
		return true
	}
	return false
}
