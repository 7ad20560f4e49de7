package db2

import (
	"fmt"
	"slices"

	"db2schema/internal/ddl"
	"db2schema/internal/model"
)

// Adapter is the DB2 schema adapter used by schema sync. Identifier quoting
// comes from the connection it is bound to; everything else is DB2-specific.
type Adapter struct {
	quoter ddl.Quoter
	base   ddl.Generator

	// createModel renders CREATE TABLE for an already prepared model.
	createModel func(m *model.Model, s ddl.Style, known ddl.KnownModels) ([]string, ddl.PendingReferences, error)
}

// Ensure Adapter can drive the base generator.
var _ ddl.Dialect = (*Adapter)(nil)

// NewAdapter returns an Adapter quoting identifiers with q and resolving
// ForeignKey targets through models. A nil q falls back to QuoteName.
func NewAdapter(q ddl.Quoter, models ddl.Lookup) *Adapter {
	if q == nil {
		q = ddl.QuoterFunc(QuoteName)
	}
	a := &Adapter{quoter: q}
	a.base = ddl.Generator{Dialect: a, Models: models}
	a.createModel = a.base.CreateModel
	return a
}

// QuoteName implements ddl.Dialect.
func (a *Adapter) QuoteName(name string) string { return a.quoter.QuoteName(name) }

// ColumnType implements ddl.Dialect.
func (a *Adapter) ColumnType(f model.Field) (string, error) { return ColumnType(f) }

// MaxNameLength implements ddl.Dialect.
func (a *Adapter) MaxNameLength() int { return MaxNameLength }

// SQLIndexesForField returns the CREATE INDEX statement for f, or nothing.
//
// An index is emitted only when the field asks for one and is not unique: a
// UNIQUE constraint already carries an index in DB2, and a second index on
// the same column is rejected. No tablespace clause is ever added.
func (a *Adapter) SQLIndexesForField(m *model.Model, f model.Field, s ddl.Style) []string {
	if !f.DBIndex || f.Unique {
		return nil
	}
	if s == nil {
		s = ddl.PlainStyle{}
	}
	table := m.TableName()
	name := ddl.TruncateName(table+"_"+f.ColumnName(), MaxNameLength)
	return []string{fmt.Sprintf("%s %s %s %s (%s);",
		s.Keyword("CREATE INDEX"),
		s.Table(a.QuoteName(name)),
		s.Keyword("ON"),
		s.Table(a.QuoteName(table)),
		s.Field(a.QuoteName(f.ColumnName())),
	)}
}

// SQLIndexesForModel collects SQLIndexesForField over every field of m.
func (a *Adapter) SQLIndexesForModel(m *model.Model, s ddl.Style) []string {
	var out []string
	for _, f := range m.Fields {
		out = append(out, a.SQLIndexesForField(m, f, s)...)
	}
	return out
}

// SQLCreateModel returns the CREATE TABLE statement for m and any foreign
// keys that must wait for their target tables.
//
// DB2 allows at most one NULL in a UNIQUE column, so before rendering, every
// unique field and every field of the first unique-together group is made
// NOT NULL. Later unique-together groups are left as declared. The change is
// made on a private copy: m itself is never modified.
func (a *Adapter) SQLCreateModel(m *model.Model, s ddl.Style, known ddl.KnownModels) ([]string, ddl.PendingReferences, error) {
	return a.createModel(uniqueNotNull(m), s, known)
}

// SQLForPendingReferences renders the deferred foreign keys targeting m and
// removes them from pending.
func (a *Adapter) SQLForPendingReferences(m *model.Model, s ddl.Style, pending ddl.PendingReferences) ([]string, error) {
	return a.base.PendingReferenceSQL(m, s, pending)
}

func uniqueNotNull(m *model.Model) *model.Model {
	c := m.Clone()
	var together []string
	if len(c.UniqueTogether) > 0 {
		together = c.UniqueTogether[0]
	}
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Unique || slices.Contains(together, f.Name) {
			f.Null = false
		}
	}
	return c
}
