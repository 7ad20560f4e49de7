// Package db2 is the IBM DB2 schema adapter. It maps abstract field types to
// DB2 column DDL, generates CREATE INDEX statements, and prepares models for
// DB2's handling of UNIQUE columns before delegating CREATE TABLE rendering
// to the base generator in internal/ddl.
package db2

import (
	"regexp"
	"sort"

	"db2schema/internal/model"
)

// TypeMapping pairs an abstract field type with its DB2 DDL template.
// Templates reference field parameters as %(name)s; see model.Field.Params.
type TypeMapping struct {
	Type     string
	Template string
}

var dataTypes = []TypeMapping{
	{"AutoField", "INTEGER GENERATED BY DEFAULT AS IDENTITY (START WITH 1, INCREMENT BY 1, CACHE 10 ORDER)"},
	{"BooleanField", "SMALLINT CHECK (%(attname)s IN (0,1))"},
	{"CharField", "VARCHAR(%(max_length)s)"},
	{"CommaSeparatedIntegerField", "VARCHAR(%(max_length)s)"},
	{"DateField", "DATE"},
	{"DateTimeField", "TIMESTAMP"},
	{"DecimalField", "DECIMAL(%(max_digits)s, %(decimal_places)s)"},
	{"FileField", "VARCHAR(%(max_length)s)"},
	{"FilePathField", "VARCHAR(%(max_length)s)"},
	{"FloatField", "DOUBLE"},
	{"ImageField", "VARCHAR(%(max_length)s)"},
	{"IntegerField", "INTEGER"},
	{"BigIntegerField", "BIGINT"},
	{"IPAddressField", "VARCHAR(15)"},
	{"ManyToManyField", "VARCHAR(%(max_length)s)"},
	{"NullBooleanField", "SMALLINT CHECK (%(attname)s IN (0,1) OR (%(attname)s IS NULL))"},
	{"OneToOneField", "VARCHAR(%(max_length)s)"},
	{"PhoneNumberField", "VARCHAR(16)"},
	{"PositiveIntegerField", "INTEGER CHECK (%(attname)s >= 0)"},
	{"PositiveSmallIntegerField", "SMALLINT CHECK (%(attname)s >= 0)"},
	{"SlugField", "VARCHAR(%(max_length)s)"},
	{"SmallIntegerField", "SMALLINT"},
	{"TextField", "CLOB"},
	{"TimeField", "TIME"},
	{"USStateField", "VARCHAR(2)"},
	{"URLField", "VARCHAR(%(max_length)s)"},
	{"XMLField", "XML"},
}

var templateByType = func() map[string]string {
	m := make(map[string]string, len(dataTypes))
	for _, tm := range dataTypes {
		m[tm.Type] = tm.Template
	}
	return m
}()

var placeholderRE = regexp.MustCompile(`%\((\w+)\)s`)

// DataTypes returns the type table in declaration order.
func DataTypes() []TypeMapping {
	return append([]TypeMapping(nil), dataTypes...)
}

// Template returns the DDL template for an abstract type.
func Template(typ string) (string, bool) {
	t, ok := templateByType[typ]
	return t, ok
}

// Placeholders lists the parameter names a template references, sorted and
// de-duplicated.
func Placeholders(template string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range placeholderRE.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	sort.Strings(out)
	return out
}

// ColumnType renders the DB2 column type for f.
//
// An unknown type yields an *UnknownTypeError; a template parameter the field
// does not provide yields a *MissingParamError naming the field.
func ColumnType(f model.Field) (string, error) {
	tmpl, ok := Template(f.Type)
	if !ok {
		return "", &UnknownTypeError{Field: f.Name, Type: f.Type}
	}
	params := f.Params()
	var missing string
	out := placeholderRE.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholderRE.FindStringSubmatch(m)[1]
		v, ok := params[key]
		if !ok && missing == "" {
			missing = key
		}
		return v
	})
	if missing != "" {
		return "", &MissingParamError{Field: f.Name, Type: f.Type, Param: missing}
	}
	return out, nil
}
