package db2

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"db2schema/internal/model"
)

// minimalField returns a field of typ with every template parameter set.
func minimalField(typ string) model.Field {
	return model.Field{
		Name:          "col",
		Type:          typ,
		MaxLength:     model.Int(10),
		MaxDigits:     model.Int(8),
		DecimalPlaces: model.Int(2),
	}
}

// TestColumnType_EveryMappingRenders checks that every table entry produces a
// non-empty, well-formed fragment: no leftover placeholders and balanced
// parentheses.
func TestColumnType_EveryMappingRenders(t *testing.T) {
	t.Parallel()

	for _, tm := range DataTypes() {
		tm := tm
		t.Run(tm.Type, func(t *testing.T) {
			t.Parallel()

			got, err := ColumnType(minimalField(tm.Type))
			if err != nil {
				t.Fatalf("ColumnType(%s) error = %v", tm.Type, err)
			}
			if strings.TrimSpace(got) == "" {
				t.Fatalf("ColumnType(%s) is empty", tm.Type)
			}
			if strings.Contains(got, "%(") {
				t.Fatalf("ColumnType(%s) = %q has unresolved placeholders", tm.Type, got)
			}
			depth := 0
			for _, r := range got {
				switch r {
				case '(':
					depth++
				case ')':
					depth--
				}
				if depth < 0 {
					break
				}
			}
			if depth != 0 {
				t.Fatalf("ColumnType(%s) = %q has unbalanced parentheses", tm.Type, got)
			}
		})
	}
}

func TestColumnType_Substitution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field model.Field
		want  string
	}{
		{
			name:  "char field",
			field: model.Field{Name: "title", Type: "CharField", MaxLength: model.Int(200)},
			want:  "VARCHAR(200)",
		},
		{
			name:  "decimal with zero scale",
			field: model.Field{Name: "qty", Type: "DecimalField", MaxDigits: model.Int(12), DecimalPlaces: model.Int(0)},
			want:  "DECIMAL(12, 0)",
		},
		{
			name:  "boolean check uses attname",
			field: model.Field{Name: "active", Type: "BooleanField"},
			want:  "SMALLINT CHECK (active IN (0,1))",
		},
		{
			name:  "null boolean repeats attname",
			field: model.Field{Name: "flag", Type: "NullBooleanField"},
			want:  "SMALLINT CHECK (flag IN (0,1) OR (flag IS NULL))",
		},
		{
			name:  "positive integer check",
			field: model.Field{Name: "age", Type: "PositiveIntegerField"},
			want:  "INTEGER CHECK (age >= 0)",
		},
		{
			name:  "identity",
			field: model.Field{Name: "id", Type: "AutoField"},
			want:  "INTEGER GENERATED BY DEFAULT AS IDENTITY (START WITH 1, INCREMENT BY 1, CACHE 10 ORDER)",
		},
		{
			name:  "text is clob",
			field: model.Field{Name: "body", Type: "TextField"},
			want:  "CLOB",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ColumnType(tt.field)
			if err != nil {
				t.Fatalf("ColumnType() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ColumnType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColumnType_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := ColumnType(model.Field{Name: "geom", Type: "GeometryField"})
	if !errors.Is(err, ErrUnknownFieldType) {
		t.Fatalf("error = %v, want ErrUnknownFieldType", err)
	}
	var ute *UnknownTypeError
	if !errors.As(err, &ute) || ute.Field != "geom" || ute.Type != "GeometryField" {
		t.Fatalf("error = %#v, want UnknownTypeError for geom", err)
	}
}

func TestColumnType_MissingParam(t *testing.T) {
	t.Parallel()

	_, err := ColumnType(model.Field{Name: "price", Type: "DecimalField", MaxDigits: model.Int(6)})
	if !errors.Is(err, ErrMissingParam) {
		t.Fatalf("error = %v, want ErrMissingParam", err)
	}
	var mpe *MissingParamError
	if !errors.As(err, &mpe) {
		t.Fatalf("error = %#v, want *MissingParamError", err)
	}
	if mpe.Field != "price" || mpe.Param != "decimal_places" {
		t.Fatalf("MissingParamError = %+v, want field price / decimal_places", mpe)
	}
	if !strings.Contains(err.Error(), "price") {
		t.Fatalf("error message %q should name the field", err.Error())
	}
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	tmpl, _ := Template("NullBooleanField")
	if got := Placeholders(tmpl); !reflect.DeepEqual(got, []string{"attname"}) {
		t.Fatalf("Placeholders(NullBooleanField) = %v", got)
	}
	tmpl, _ = Template("DecimalField")
	if got := Placeholders(tmpl); !reflect.DeepEqual(got, []string{"decimal_places", "max_digits"}) {
		t.Fatalf("Placeholders(DecimalField) = %v", got)
	}
	tmpl, _ = Template("DateField")
	if got := Placeholders(tmpl); got != nil {
		t.Fatalf("Placeholders(DateField) = %v, want nil", got)
	}
}

func TestDataTypes_IsACopy(t *testing.T) {
	t.Parallel()

	a := DataTypes()
	a[0].Template = "MUTATED"
	if tmpl, _ := Template(a[0].Type); tmpl == "MUTATED" {
		t.Fatalf("DataTypes() exposed the internal table")
	}
	if DataTypes()[0].Template == "MUTATED" {
		t.Fatalf("DataTypes() returned the internal slice")
	}
}

func TestQuoteName(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"book", `"BOOK"`},
		{"Book_Title", `"BOOK_TITLE"`},
		{`"MixedCase"`, `"MixedCase"`},
		{`we"ird`, `"WE""IRD"`},
		{"straße", `"STRASSE"`},
		{`"a""b"`, `"a""b"`},
		{`"a"b"`, `"""A""B"""`},
		{`""`, `""`},
		{`"`, `""""`},
	}
	for _, tt := range tests {
		if got := QuoteName(tt.in); got != tt.want {
			t.Errorf("QuoteName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
