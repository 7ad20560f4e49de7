// Package ddl defines a small, dialect-agnostic model for table DDL and the
// base generator that turns application models into CREATE TABLE and
// foreign-key statements.
//
// The package stays generic: column types, identifier quoting and name
// length limits come from a Dialect supplied by the caller (see
// internal/db2). Rendering is decorated through a Style, which is cosmetic
// only.
package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL renders a CREATE TABLE statement from a TableDef.
//
// Rules:
//
//   - t.FQN must be non-empty; each dotted segment is quoted with q.
//
//   - Each column must have a non-empty Name and SQLType.
//
//   - A column is rendered as:
//
//     <Name> <SQLType> [NOT NULL] [PRIMARY KEY | UNIQUE] [DEFAULT <Default>] [REFERENCES <t> (<c>)]
//
//     where NOT NULL is added when Nullable == false or the column is a
//     primary key.
//
//   - Each entry of t.Uniques becomes a table-level UNIQUE (<cols>) clause.
//
//   - The resulting statement has the form:
//
//     CREATE TABLE <FQN> (
//     <col1-def>,
//     ...,
//     [UNIQUE (<cols>)]
//     );
func BuildCreateTableSQL(t TableDef, q Quoter, s Style) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}
	if s == nil {
		s = PlainStyle{}
	}

	cols := make([]string, 0, len(t.Columns)+len(t.Uniques))
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("ddl: column %s missing SQLType", name)
		}

		parts := []string{s.Field(q.QuoteName(name)), s.ColType(typ)}
		if !c.Nullable || c.PrimaryKey {
			parts = append(parts, s.Keyword("NOT NULL"))
		}
		if c.PrimaryKey {
			parts = append(parts, s.Keyword("PRIMARY KEY"))
		} else if c.Unique {
			parts = append(parts, s.Keyword("UNIQUE"))
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			parts = append(parts, s.Keyword("DEFAULT"), def)
		}
		if ref := c.References; ref != nil {
			parts = append(parts,
				s.Keyword("REFERENCES"),
				s.Table(quoteFQN(q, ref.Table)),
				"("+s.Field(q.QuoteName(ref.Column))+")",
			)
		}
		cols = append(cols, strings.Join(parts, " "))
	}

	for i, group := range t.Uniques {
		if len(group) == 0 {
			return "", fmt.Errorf("ddl: unique group %d of table %s is empty", i, fqn)
		}
		quoted := make([]string, len(group))
		for j, c := range group {
			quoted[j] = s.Field(q.QuoteName(c))
		}
		cols = append(cols, s.Keyword("UNIQUE")+" ("+strings.Join(quoted, ", ")+")")
	}

	stmt := fmt.Sprintf(
		"%s %s (\n  %s\n);",
		s.Keyword("CREATE TABLE"),
		s.Table(quoteFQN(q, fqn)),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}

func quoteFQN(q Quoter, fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, q.QuoteName(p))
	}
	return strings.Join(out, ".")
}
