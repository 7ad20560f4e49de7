// Package model describes the application models whose tables the schema
// adapter manages.
//
// A Model is a table plus an ordered list of fields and unique-together
// groups. Field types are abstract names ("CharField", "IntegerField", ...)
// that a dialect (see internal/db2) maps to concrete column DDL. A Registry is
// the ordered, validated set of models known to the process; it is typically
// loaded from a models file (see LoadFile).
package model

import (
	"strconv"
	"strings"
)

// Abstract field types with behaviour outside the dialect type table.
const (
	TypeAutoField  = "AutoField"
	TypeForeignKey = "ForeignKey"
)

// Field describes one model column as seen by DDL generation.
//
// MaxLength, MaxDigits and DecimalPlaces are pointers so that an explicit zero
// (DECIMAL(10, 0)) can be told apart from "not set".
type Field struct {
	Name          string `json:"name" yaml:"name"`
	Column        string `json:"column,omitempty" yaml:"column,omitempty"`
	Type          string `json:"type" yaml:"type"`
	Null          bool   `json:"null,omitempty" yaml:"null,omitempty"`
	Unique        bool   `json:"unique,omitempty" yaml:"unique,omitempty"`
	PrimaryKey    bool   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	DBIndex       bool   `json:"db_index,omitempty" yaml:"db_index,omitempty"`
	MaxLength     *int   `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MaxDigits     *int   `json:"max_digits,omitempty" yaml:"max_digits,omitempty"`
	DecimalPlaces *int   `json:"decimal_places,omitempty" yaml:"decimal_places,omitempty"`

	// RelatedModel names the target model of a ForeignKey.
	RelatedModel string `json:"related_model,omitempty" yaml:"related_model,omitempty"`
	// RelatedField names the target field; empty means the target's primary key.
	RelatedField string `json:"related_field,omitempty" yaml:"related_field,omitempty"`
}

// IsRelation reports whether the field is a ForeignKey.
func (f Field) IsRelation() bool { return f.Type == TypeForeignKey }

// AttName is the attribute name backing the column: the field name, or
// name_id for relations.
func (f Field) AttName() string {
	if f.IsRelation() {
		return f.Name + "_id"
	}
	return f.Name
}

// ColumnName returns the explicit column or the attribute name.
func (f Field) ColumnName() string {
	if c := strings.TrimSpace(f.Column); c != "" {
		return c
	}
	return f.AttName()
}

// Params returns the named values a DDL type template may reference.
// Unset numeric options are absent from the map.
func (f Field) Params() map[string]string {
	p := map[string]string{
		"name":    f.Name,
		"attname": f.AttName(),
		"column":  f.ColumnName(),
	}
	if f.MaxLength != nil {
		p["max_length"] = strconv.Itoa(*f.MaxLength)
	}
	if f.MaxDigits != nil {
		p["max_digits"] = strconv.Itoa(*f.MaxDigits)
	}
	if f.DecimalPlaces != nil {
		p["decimal_places"] = strconv.Itoa(*f.DecimalPlaces)
	}
	return p
}

// Model is one table: its fields in declaration order and its composite
// unique constraints.
type Model struct {
	Name           string     `json:"name" yaml:"name"`
	Table          string     `json:"table,omitempty" yaml:"table,omitempty"`
	Fields         []Field    `json:"fields" yaml:"fields"`
	UniqueTogether [][]string `json:"unique_together,omitempty" yaml:"unique_together,omitempty"`
}

// TableName returns the explicit table name or the lower-cased model name.
func (m *Model) TableName() string {
	if t := strings.TrimSpace(m.Table); t != "" {
		return t
	}
	return strings.ToLower(m.Name)
}

// Field looks up a field by name.
func (m *Model) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// PrimaryKey returns the model's primary key field.
func (m *Model) PrimaryKey() (Field, bool) {
	for _, f := range m.Fields {
		if f.PrimaryKey {
			return f, true
		}
	}
	return Field{}, false
}

// Clone returns a deep copy. Mutating the copy's fields or unique-together
// groups never affects m.
func (m *Model) Clone() *Model {
	c := &Model{
		Name:   m.Name,
		Table:  m.Table,
		Fields: make([]Field, len(m.Fields)),
	}
	for i, f := range m.Fields {
		f.MaxLength = cloneInt(f.MaxLength)
		f.MaxDigits = cloneInt(f.MaxDigits)
		f.DecimalPlaces = cloneInt(f.DecimalPlaces)
		c.Fields[i] = f
	}
	if m.UniqueTogether != nil {
		c.UniqueTogether = make([][]string, len(m.UniqueTogether))
		for i, g := range m.UniqueTogether {
			c.UniqueTogether[i] = append([]string(nil), g...)
		}
	}
	return c
}

// Int returns a pointer to n, for populating optional Field options.
func Int(n int) *int { return &n }

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
