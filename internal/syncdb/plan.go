package syncdb

import (
	"db2schema/internal/ddl"
	"db2schema/internal/model"
)

// Plan returns the statements a Sync against an empty database would run, in
// execution order: each table followed by the foreign keys it unblocks, then
// all indexes. Nothing is executed.
func Plan(reg *model.Registry, a Adapter, s ddl.Style) ([]string, error) {
	known := ddl.KnownModels{}
	pending := ddl.PendingReferences{}
	var out, indexes []string
	for _, m := range reg.Models() {
		stmts, refs, err := a.SQLCreateModel(m, s, known)
		if err != nil {
			return nil, err
		}
		known[m.Name] = true
		pending.Merge(refs)
		alters, err := a.SQLForPendingReferences(m, s, pending)
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
		out = append(out, alters...)
		indexes = append(indexes, a.SQLIndexesForModel(m, s)...)
	}
	return append(out, indexes...), nil
}
