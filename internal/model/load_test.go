package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const jsonModels = `{
  "models": [
    {
      "name": "Author",
      "fields": [
        { "name": "name", "type": "CharField", "max_length": 100, "unique": true, "null": true }
      ]
    },
    {
      "name": "Book",
      "table": "library_book",
      "fields": [
        { "name": "author", "type": "ForeignKey", "related_model": "Author" },
        { "name": "title", "type": "CharField", "max_length": 200, "db_index": true },
        { "name": "price", "type": "DecimalField", "max_digits": 8, "decimal_places": 2 }
      ],
      "unique_together": [["author", "title"]]
    }
  ]
}`

const yamlModels = `
models:
  - name: Author
    fields:
      - name: name
        type: CharField
        max_length: 100
        unique: true
        null: true
  - name: Book
    table: library_book
    fields:
      - name: author
        type: ForeignKey
        related_model: Author
      - name: title
        type: CharField
        max_length: 200
        db_index: true
      - name: price
        type: DecimalField
        max_digits: 8
        decimal_places: 2
    unique_together:
      - [author, title]
`

func TestDecode_JSONAndYAMLAgree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		format Format
	}{
		{name: "json", body: jsonModels, format: FormatJSON},
		{name: "yaml", body: yamlModels, format: FormatYAML},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg, err := Decode(strings.NewReader(tt.body), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if reg.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", reg.Len())
			}
			book, ok := reg.Lookup("Book")
			if !ok {
				t.Fatalf("Book not registered")
			}
			if book.TableName() != "library_book" {
				t.Fatalf("Book table = %q", book.TableName())
			}
			price, _ := book.Field("price")
			if price.DecimalPlaces == nil || *price.DecimalPlaces != 2 {
				t.Fatalf("price.DecimalPlaces = %v, want 2", price.DecimalPlaces)
			}
			title, _ := book.Field("title")
			if !title.DBIndex {
				t.Fatalf("title.DBIndex = false, want true")
			}
			if len(book.UniqueTogether) != 1 || len(book.UniqueTogether[0]) != 2 {
				t.Fatalf("UniqueTogether = %v", book.UniqueTogether)
			}
		})
	}
}

func TestDecode_RejectsUnknownKeysAndEmptyDocs(t *testing.T) {
	t.Parallel()

	if _, err := Decode(strings.NewReader(`{"models":[{"name":"A","colour":"red"}]}`), FormatJSON); err == nil {
		t.Fatalf("expected error for unknown JSON key")
	}
	if _, err := Decode(strings.NewReader(`{"models":[]}`), FormatJSON); err == nil {
		t.Fatalf("expected error for empty models list")
	}
	if _, err := Decode(strings.NewReader(`{}`), Format("toml")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadFile_PicksFormatByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "models.yml")
	if err := os.WriteFile(path, []byte(yamlModels), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	cases := map[string]Format{
		"m.yaml":      FormatYAML,
		"m.YML":       FormatYAML,
		"m.json":      FormatJSON,
		"models":      FormatJSON,
		"dir.yaml/m.": FormatJSON,
	}
	for in, want := range cases {
		if got := FormatFromPath(in); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeYAML_BareNullKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantNull bool
		wantErr  string
	}{
		{
			name:     "flow mapping",
			body:     "models:\n  - name: User\n    fields: [{name: email, type: CharField, max_length: 50, null: true}]\n",
			wantNull: true,
		},
		{
			name:     "block mapping false",
			body:     "models:\n  - name: User\n    fields:\n      - name: email\n        type: CharField\n        max_length: 50\n        null: false\n",
			wantNull: false,
		},
		{
			name:     "quoted key",
			body:     "models:\n  - name: User\n    fields: [{name: email, type: CharField, max_length: 50, \"null\": true}]\n",
			wantNull: true,
		},
		{
			name:    "bare and quoted together",
			body:    "models:\n  - name: User\n    fields: [{name: email, type: CharField, max_length: 50, null: true, \"null\": false}]\n",
			wantErr: "null is set twice",
		},
		{
			name:    "unknown key still rejected",
			body:    "models:\n  - name: User\n    fields: [{name: email, type: CharField, nullable: true}]\n",
			wantErr: "nullable",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg, err := Decode(strings.NewReader(tt.body), FormatYAML)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Decode err = %v, want it to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			m, _ := reg.Lookup("User")
			f, ok := m.Field("email")
			if !ok {
				t.Fatal("email field missing")
			}
			if f.Null != tt.wantNull {
				t.Fatalf("Null = %v, want %v", f.Null, tt.wantNull)
			}
			if f.MaxLength == nil || *f.MaxLength != 50 {
				t.Fatalf("MaxLength = %v, want 50", f.MaxLength)
			}
		})
	}
}
