// Package introspect answers which of the registered models have tables in
// the connected database.
package introspect

import (
	"context"
	"fmt"
	"strings"

	"db2schema/internal/model"
	"db2schema/internal/storage"
)

// ExistingTables returns the set of table names the lister reports, folded to
// lower case.
func ExistingTables(ctx context.Context, lister storage.TableLister) (map[string]bool, error) {
	names, err := lister.TableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("introspect: %w", err)
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set, nil
}

// ModelTables returns the table names of the registered models, in registry
// order. With onlyExisting set, tables the database does not have are
// skipped. Names are compared case-insensitively because DB2 folds unquoted
// identifiers to upper case.
func ModelTables(ctx context.Context, lister storage.TableLister, reg *model.Registry, onlyExisting bool) ([]string, error) {
	tables := reg.Tables()
	if !onlyExisting {
		return tables, nil
	}
	existing, err := ExistingTables(ctx, lister)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		if existing[strings.ToLower(t)] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Existing lists the tables of reg that the database behind Lister has.
type Existing struct {
	Lister   storage.TableLister
	Registry *model.Registry
}

// Tables returns the existing model tables in registry order.
func (e Existing) Tables(ctx context.Context) ([]string, error) {
	return ModelTables(ctx, e.Lister, e.Registry, true)
}
