package ddl

// ColumnDef describes a single column in a table definition. Names are
// unquoted; quoting happens at render time through a Quoter.
//
// Fields:
//   - Name: column name
//   - SQLType: dialect column type, possibly with trailing CHECK clauses
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: renders inline PRIMARY KEY
//   - Unique: renders inline UNIQUE (ignored for primary keys)
//   - Default: raw default expression
//   - References: inline foreign key target, if any
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Unique     bool
	Default    string
	References *ForeignRef
}

// ForeignRef is the target of a column-level REFERENCES clause.
type ForeignRef struct {
	Table  string
	Column string
}

// TableDef holds the table name, its ordered columns, and table-level UNIQUE
// groups (column names).
type TableDef struct {
	FQN     string
	Columns []ColumnDef
	Uniques [][]string
}

// Quoter quotes a raw identifier for the target engine.
type Quoter interface {
	QuoteName(name string) string
}

// QuoterFunc adapts a plain function to Quoter.
type QuoterFunc func(string) string

// QuoteName implements Quoter.
func (f QuoterFunc) QuoteName(name string) string { return f(name) }
