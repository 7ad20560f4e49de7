package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Document is the on-disk shape of a models file:
//
//	{
//	  "models": [
//	    { "name": "Author", "fields": [ { "name": "name", "type": "CharField", "max_length": 100 } ] },
//	    { "name": "Book", "fields": [ { "name": "author", "type": "ForeignKey", "related_model": "Author" } ],
//	      "unique_together": [["author", "title"]] }
//	  ]
//	}
//
// The same structure is accepted as YAML.
type Document struct {
	Models []*Model `json:"models" yaml:"models"`
}

// Format selects the models file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a Document from r and builds a validated Registry.
func Decode(r io.Reader, format Format) (*Registry, error) {
	var doc Document
	switch format {
	case FormatYAML:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read models: %w", err)
		}
		if err := yaml.UnmarshalStrict(b, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml models: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json models: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported models format %q", format)
	}
	if len(doc.Models) == 0 {
		return nil, fmt.Errorf("models file declares no models")
	}
	return NewRegistry(doc.Models...)
}

// UnmarshalYAML accepts a bare null key. YAML reads it as a null key rather
// than the string "null", so it is renamed before the strict decode.
func (f *Field) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[interface{}]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if v, ok := raw[nil]; ok {
		if _, dup := raw["null"]; dup {
			return fmt.Errorf("field %v: null is set twice", raw["name"])
		}
		delete(raw, nil)
		raw["null"] = v
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("field %v: %w", raw["name"], err)
	}
	type plain Field
	if err := yaml.UnmarshalStrict(b, (*plain)(f)); err != nil {
		return fmt.Errorf("field %v: %w", raw["name"], err)
	}
	return nil
}

// LoadFile opens path and decodes it using the format implied by its
// extension.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open models: %w", err)
	}
	defer f.Close()

	reg, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}
