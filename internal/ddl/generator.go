package ddl

import (
	"fmt"

	"db2schema/internal/model"
)

// Dialect supplies the engine-specific pieces the generator needs.
type Dialect interface {
	Quoter
	// ColumnType returns the column DDL type for f.
	ColumnType(f model.Field) (string, error)
	// MaxNameLength is the longest identifier the engine accepts.
	MaxNameLength() int
}

// Lookup resolves models by name; *model.Registry implements it.
type Lookup interface {
	Lookup(name string) (*model.Model, bool)
}

// KnownModels is the set of model names whose tables already exist (or are
// created earlier in the same script), keyed by model name.
type KnownModels map[string]bool

// Reference is a foreign key column that could not be declared inline
// because its target table did not exist yet.
type Reference struct {
	Model *model.Model
	Field model.Field
}

// PendingReferences groups deferred foreign keys by target model name.
type PendingReferences map[string][]Reference

// Merge appends every entry of other to p.
func (p PendingReferences) Merge(other PendingReferences) {
	for target, refs := range other {
		p[target] = append(p[target], refs...)
	}
}

// Generator is the base DDL generator: it renders a model's CREATE TABLE
// statement using whatever column types and quoting its Dialect provides.
type Generator struct {
	Dialect Dialect
	Models  Lookup
}

// CreateModel returns the CREATE TABLE statement for m and the foreign keys
// that must be added once their target tables exist.
//
// A ForeignKey whose target is m itself or is listed in known is declared
// inline with REFERENCES; any other is returned as pending, keyed by the
// target model name.
func (g Generator) CreateModel(m *model.Model, s Style, known KnownModels) ([]string, PendingReferences, error) {
	td, pending, err := g.TableDef(m, known)
	if err != nil {
		return nil, nil, err
	}
	stmt, err := BuildCreateTableSQL(td, g.Dialect, s)
	if err != nil {
		return nil, nil, fmt.Errorf("model %s: %w", m.Name, err)
	}
	return []string{stmt}, pending, nil
}

// TableDef converts m into the intermediate table model.
func (g Generator) TableDef(m *model.Model, known KnownModels) (TableDef, PendingReferences, error) {
	td := TableDef{FQN: m.TableName()}
	pending := PendingReferences{}

	for _, f := range m.Fields {
		var (
			typ string
			err error
			ref *ForeignRef
		)
		if f.IsRelation() {
			target, targetField, rerr := g.related(m, f)
			if rerr != nil {
				return TableDef{}, nil, rerr
			}
			typ, err = g.relatedColumnType(f, targetField)
			if target.Name == m.Name || known[target.Name] {
				ref = &ForeignRef{Table: target.TableName(), Column: targetField.ColumnName()}
			} else {
				pending[target.Name] = append(pending[target.Name], Reference{Model: m, Field: f})
			}
		} else {
			typ, err = g.Dialect.ColumnType(f)
		}
		if err != nil {
			return TableDef{}, nil, fmt.Errorf("model %s: %w", m.Name, err)
		}

		td.Columns = append(td.Columns, ColumnDef{
			Name:       f.ColumnName(),
			SQLType:    typ,
			Nullable:   f.Null,
			PrimaryKey: f.PrimaryKey,
			Unique:     f.Unique,
			References: ref,
		})
	}

	for _, group := range m.UniqueTogether {
		cols := make([]string, 0, len(group))
		for _, name := range group {
			f, ok := m.Field(name)
			if !ok {
				return TableDef{}, nil, fmt.Errorf("model %s: unique_together names unknown field %q", m.Name, name)
			}
			cols = append(cols, f.ColumnName())
		}
		td.Uniques = append(td.Uniques, cols)
	}
	return td, pending, nil
}

// PendingReferenceSQL renders ALTER TABLE ... ADD CONSTRAINT statements for
// every pending reference that targets target, and removes them from
// pending.
func (g Generator) PendingReferenceSQL(target *model.Model, s Style, pending PendingReferences) ([]string, error) {
	refs := pending[target.Name]
	if len(refs) == 0 {
		return nil, nil
	}
	if s == nil {
		s = PlainStyle{}
	}
	q := g.Dialect

	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		targetField, err := relatedField(target, ref.Field)
		if err != nil {
			return nil, fmt.Errorf("model %s: field %s: %w", ref.Model.Name, ref.Field.Name, err)
		}
		rTable := ref.Model.TableName()
		rCol := ref.Field.ColumnName()
		table := target.TableName()
		col := targetField.ColumnName()

		name := TruncateName(fmt.Sprintf("%s_refs_%s_%s", rCol, col, pairHash(rTable, table)), g.Dialect.MaxNameLength())
		out = append(out, fmt.Sprintf("%s %s %s %s %s (%s) %s %s (%s);",
			s.Keyword("ALTER TABLE"), s.Table(quoteFQN(q, rTable)),
			s.Keyword("ADD CONSTRAINT"), q.QuoteName(name),
			s.Keyword("FOREIGN KEY"), s.Field(q.QuoteName(rCol)),
			s.Keyword("REFERENCES"), s.Table(quoteFQN(q, table)), s.Field(q.QuoteName(col)),
		))
	}
	delete(pending, target.Name)
	return out, nil
}

func (g Generator) related(m *model.Model, f model.Field) (*model.Model, model.Field, error) {
	var target *model.Model
	if f.RelatedModel == m.Name {
		target = m
	} else if g.Models != nil {
		target, _ = g.Models.Lookup(f.RelatedModel)
	}
	if target == nil {
		return nil, model.Field{}, fmt.Errorf("model %s: field %s: unknown related model %q", m.Name, f.Name, f.RelatedModel)
	}
	tf, err := relatedField(target, f)
	if err != nil {
		return nil, model.Field{}, fmt.Errorf("model %s: field %s: %w", m.Name, f.Name, err)
	}
	return target, tf, nil
}

func relatedField(target *model.Model, f model.Field) (model.Field, error) {
	if f.RelatedField != "" {
		tf, ok := target.Field(f.RelatedField)
		if !ok {
			return model.Field{}, fmt.Errorf("related field %s.%s does not exist", target.Name, f.RelatedField)
		}
		return tf, nil
	}
	tf, ok := target.PrimaryKey()
	if !ok {
		return model.Field{}, fmt.Errorf("related model %s has no primary key", target.Name)
	}
	return tf, nil
}

// relatedColumnType is the column type of a foreign key: the target field's
// type, with auto-increment and positive-only integers collapsed to their
// plain integer counterparts.
func (g Generator) relatedColumnType(f, target model.Field) (string, error) {
	rf := target
	rf.Name = f.Name
	rf.Column = f.ColumnName()
	switch target.Type {
	case model.TypeAutoField, "PositiveIntegerField":
		rf.Type = "IntegerField"
	case "PositiveSmallIntegerField":
		rf.Type = "SmallIntegerField"
	}
	return g.Dialect.ColumnType(rf)
}
