package config

import (
	"encoding/json"
	"testing"
)

/*
TestOptionsString verifies that Options.String returns the string value when
present and of the correct type, and the provided default otherwise.
*/
func TestOptionsString(t *testing.T) {
	o := Options{
		"schema": "APP",
		"n":      123,
	}

	tests := []struct {
		key string
		def string
		got string
	}{
		{"schema", "zzz", "APP"},
		{"n", "def", "def"},
		{"missing", "fallback", "fallback"},
	}
	for _, tc := range tests {
		if got := o.String(tc.key, tc.def); got != tc.got {
			t.Fatalf("String(%q,%q)=%q; want %q", tc.key, tc.def, got, tc.got)
		}
	}
}

func TestOptionsBool(t *testing.T) {
	o := Options{
		"t": true,
		"f": false,
		"s": "not-bool",
	}

	tests := []struct {
		key string
		def bool
		got bool
	}{
		{"t", false, true},
		{"f", true, false},
		{"s", true, true},
		{"missing", false, false},
	}
	for _, tc := range tests {
		if got := o.Bool(tc.key, tc.def); got != tc.got {
			t.Fatalf("Bool(%q,%v)=%v; want %v", tc.key, tc.def, got, tc.got)
		}
	}
}

/*
TestOptionsInt verifies that Options.Int accepts JSON numbers (float64) and
YAML integers (int), and falls back to the default for anything else.
*/
func TestOptionsInt(t *testing.T) {
	o := Options{
		"f": float64(3.9),
		"i": 7,
		"s": "nope",
	}

	tests := []struct {
		key string
		def int
		got int
	}{
		{"f", -1, 3},
		{"i", -1, 7},
		{"s", 42, 42},
		{"missing", 99, 99},
	}
	for _, tc := range tests {
		if got := o.Int(tc.key, tc.def); got != tc.got {
			t.Fatalf("Int(%q,%d)=%d; want %d", tc.key, tc.def, got, tc.got)
		}
	}
}

func TestOptionsUnmarshalJSON(t *testing.T) {
	var o1 Options
	if err := o1.UnmarshalJSON([]byte("null")); err != nil {
		t.Fatalf("UnmarshalJSON(null) error: %v", err)
	}
	if o1 == nil || len(o1) != 0 {
		t.Fatalf("UnmarshalJSON(null) => %#v; want empty non-nil map", o1)
	}

	var o2 Options
	if err := o2.UnmarshalJSON(nil); err != nil {
		t.Fatalf("UnmarshalJSON(empty) error: %v", err)
	}
	if o2 == nil || len(o2) != 0 {
		t.Fatalf("UnmarshalJSON(empty) => %#v; want empty non-nil map", o2)
	}

	var o3 Options
	if err := o3.UnmarshalJSON([]byte(`{"a": "b", "n": 1}`)); err != nil {
		t.Fatalf("UnmarshalJSON(object) error: %v", err)
	}
	if len(o3) != 2 || o3["a"] != "b" {
		t.Fatalf("UnmarshalJSON(object) unexpected content: %#v", o3)
	}

	var o4 Options
	if err := o4.UnmarshalJSON([]byte(`123`)); err == nil {
		t.Fatal("UnmarshalJSON(123) expected error, got nil")
	}
}

func TestJSONNullOptionsBecomesEmptyMap(t *testing.T) {
	type wrapper struct {
		Options Options `json:"options"`
	}
	var w wrapper
	if err := json.Unmarshal([]byte(`{"options": null}`), &w); err != nil {
		t.Fatalf("json.Unmarshal wrapper(null) error: %v", err)
	}
	if w.Options == nil || len(w.Options) != 0 {
		t.Fatalf("wrapper.Options after null => %#v; want non-nil empty map", w.Options)
	}
}
