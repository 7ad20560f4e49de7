// Package storage defines the backend-agnostic database session used by
// cleanup, schema sync and introspection, plus a small registry that maps a
// configured kind ("db2", "sqlite", ...) to a backend constructor.
//
// Backends register themselves from init; import
// db2schema/internal/storage/all to enable every built-in backend.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"db2schema/internal/config"
	"db2schema/internal/ddl"
)

// Cursor is a single execution session. Statements run one at a time, in
// order, on the same underlying connection.
type Cursor interface {
	Execute(ctx context.Context, sql string) error
	Close() error
}

// TableLister lists the tables that exist in the connected database.
type TableLister interface {
	TableNames(ctx context.Context) ([]string, error)
}

// Repository is an open connection to one database.
type Repository interface {
	ddl.Quoter
	TableLister

	// Exec runs a single statement outside any cursor.
	Exec(ctx context.Context, sql string) error

	// Cursor acquires a dedicated session. Callers must Close it.
	Cursor(ctx context.Context) (Cursor, error)

	Close()
}

// Config selects and configures a backend.
type Config struct {
	Kind    string
	DSN     string
	Options config.Options
}

// ConfigFrom builds a Config from database settings.
func ConfigFrom(d *config.Database) Config {
	return Config{Kind: d.Kind, DSN: d.DSN, Options: d.Options}
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds, sorted. The slice is a copy.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
