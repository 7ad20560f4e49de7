package ddl

import (
	"strconv"
	"strings"
	"testing"
)

// dq is a simple double-quote Quoter used across the package tests.
var dq = QuoterFunc(func(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` })

// TestBuildCreateTableSQL verifies that BuildCreateTableSQL generates the
// expected CREATE TABLE statements and surfaces appropriate errors for invalid
// inputs.
func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		def         TableDef
		wantSQL     string
		wantErr     bool
		errContains string
	}{
		{
			name:        "empty FQN returns error",
			def:         TableDef{FQN: "", Columns: []ColumnDef{{Name: "id", SQLType: "INT"}}},
			wantErr:     true,
			errContains: "table FQN must not be empty",
		},
		{
			name:        "no columns returns error",
			def:         TableDef{FQN: "t"},
			wantErr:     true,
			errContains: "at least one column is required",
		},
		{
			name:        "column with empty name returns error",
			def:         TableDef{FQN: "t", Columns: []ColumnDef{{Name: "", SQLType: "INT"}}},
			wantErr:     true,
			errContains: "column with empty name",
		},
		{
			name:        "column with empty type returns error",
			def:         TableDef{FQN: "t", Columns: []ColumnDef{{Name: "id", SQLType: " "}}},
			wantErr:     true,
			errContains: "missing SQLType",
		},
		{
			name: "empty unique group returns error",
			def: TableDef{
				FQN:     "t",
				Columns: []ColumnDef{{Name: "id", SQLType: "INT"}},
				Uniques: [][]string{{}},
			},
			wantErr:     true,
			errContains: "unique group 0",
		},
		{
			name:    "nullable column",
			def:     TableDef{FQN: "t", Columns: []ColumnDef{{Name: "id", SQLType: "INT", Nullable: true}}},
			wantSQL: "CREATE TABLE \"t\" (\n  \"id\" INT\n);",
		},
		{
			name:    "non-nullable column",
			def:     TableDef{FQN: "t", Columns: []ColumnDef{{Name: "id", SQLType: "INT"}}},
			wantSQL: "CREATE TABLE \"t\" (\n  \"id\" INT NOT NULL\n);",
		},
		{
			name: "primary key is never nullable and never UNIQUE",
			def: TableDef{FQN: "t", Columns: []ColumnDef{
				{Name: "id", SQLType: "INTEGER", Nullable: true, PrimaryKey: true, Unique: true},
				{Name: "name", SQLType: "VARCHAR(10)", Nullable: true},
			}},
			wantSQL: "CREATE TABLE \"t\" (\n  \"id\" INTEGER NOT NULL PRIMARY KEY,\n  \"name\" VARCHAR(10)\n);",
		},
		{
			name: "unique, default and references",
			def: TableDef{FQN: "book", Columns: []ColumnDef{
				{Name: "isbn", SQLType: "VARCHAR(13)", Unique: true},
				{Name: "created", SQLType: "TIMESTAMP", Default: " CURRENT TIMESTAMP "},
				{Name: "author_id", SQLType: "INTEGER", References: &ForeignRef{Table: "author", Column: "id"}},
			}},
			wantSQL: "CREATE TABLE \"book\" (\n" +
				"  \"isbn\" VARCHAR(13) NOT NULL UNIQUE,\n" +
				"  \"created\" TIMESTAMP NOT NULL DEFAULT CURRENT TIMESTAMP,\n" +
				"  \"author_id\" INTEGER NOT NULL REFERENCES \"author\" (\"id\")\n);",
		},
		{
			name: "table-level unique groups",
			def: TableDef{
				FQN: "m",
				Columns: []ColumnDef{
					{Name: "a", SQLType: "INT"},
					{Name: "b", SQLType: "INT"},
				},
				Uniques: [][]string{{"a", "b"}},
			},
			wantSQL: "CREATE TABLE \"m\" (\n  \"a\" INT NOT NULL,\n  \"b\" INT NOT NULL,\n  UNIQUE (\"a\", \"b\")\n);",
		},
		{
			name: "dotted FQN quotes each segment",
			def: TableDef{
				FQN:     "  app.entries  ",
				Columns: []ColumnDef{{Name: "  col1  ", SQLType: "  INT  ", Nullable: true}},
			},
			wantSQL: "CREATE TABLE \"app\".\"entries\" (\n  \"col1\" INT\n);",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotSQL, err := BuildCreateTableSQL(tt.def, dq, PlainStyle{})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BuildCreateTableSQL() error = nil, want non-nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("BuildCreateTableSQL() error = %q, want substring %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildCreateTableSQL() unexpected error = %v", err)
			}
			if gotSQL != tt.wantSQL {
				t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", gotSQL, tt.wantSQL)
			}
		})
	}
}

// TestBuildCreateTableSQL_StyleIsCosmetic checks that ColorStyle only adds
// escape codes: stripping them yields the plain statement.
func TestBuildCreateTableSQL_StyleIsCosmetic(t *testing.T) {
	t.Parallel()

	def := TableDef{FQN: "t", Columns: []ColumnDef{
		{Name: "id", SQLType: "INTEGER", PrimaryKey: true},
		{Name: "code", SQLType: "CHAR(2)", Unique: true},
	}}
	plain, err := BuildCreateTableSQL(def, dq, PlainStyle{})
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	colored, err := BuildCreateTableSQL(def, dq, ColorStyle{})
	if err != nil {
		t.Fatalf("colored: %v", err)
	}
	if colored == plain {
		t.Fatalf("ColorStyle produced no decoration")
	}

	stripped := colored
	for _, code := range []string{ansiReset, ansiBoldYellow, ansiBoldGreen, ansiGreen} {
		stripped = strings.ReplaceAll(stripped, code, "")
	}
	if stripped != plain {
		t.Fatalf("stripped colored output differs:\n%s\nvs\n%s", stripped, plain)
	}
}

var benchmarkSink string

// BenchmarkBuildCreateTableSQL_LargeSchema measures rendering of a wide table.
func BenchmarkBuildCreateTableSQL_LargeSchema(b *testing.B) {
	cols := make([]ColumnDef, 0, 64)
	for i := 0; i < 64; i++ {
		cols = append(cols, ColumnDef{Name: "col_" + strconv.Itoa(i), SQLType: "VARCHAR(64)", Nullable: true})
	}
	def := TableDef{FQN: "large_table", Columns: cols}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sql, err := BuildCreateTableSQL(def, dq, PlainStyle{})
		if err != nil {
			b.Fatalf("BuildCreateTableSQL() error = %v", err)
		}
		benchmarkSink = sql
	}
}
