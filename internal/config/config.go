// Package config defines the configuration model for db2schema. A File is
// decoded from JSON or YAML and passed explicitly to every operation; nothing
// in the program reads configuration from globals.
//
// Example (JSON):
//
//	{
//	  "database": {
//	    "kind": "db2",
//	    "dsn": "HOSTNAME=localhost;PORT=50000;DATABASE=testdb;UID=db2inst1;PWD=secret",
//	    "name": "appdb",
//	    "test_name": "test_appdb",
//	    "alias": "default",
//	    "options": { "schema": "APP" }
//	  },
//	  "models": "models.yaml",
//	  "runtime": { "verbosity": 1 },
//	  "metrics": { "backend": "pushgateway", "pushgateway_url": "http://localhost:9091" }
//	}
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// File is the top-level configuration object.
type File struct {
	Database Database `json:"database" yaml:"database"`

	// Models is the path of the models file. Relative paths are resolved
	// against the directory of the configuration file by Load.
	Models string `json:"models" yaml:"models"`

	Runtime Runtime `json:"runtime" yaml:"runtime"`
	Metrics Metrics `json:"metrics" yaml:"metrics"`
}

// Database holds the connection settings for one database alias.
type Database struct {
	// Kind selects the storage backend ("db2", "sqlite", "postgres", "mssql", "mysql").
	Kind string `json:"kind" yaml:"kind"`

	// DSN is passed to the backend driver unchanged.
	DSN string `json:"dsn" yaml:"dsn"`

	// Name is the primary database name.
	Name string `json:"name" yaml:"name"`

	// TestName, when non-empty, names the database used for test runs and
	// takes precedence over Name.
	TestName string `json:"test_name" yaml:"test_name"`

	// Alias identifies this connection to schema sync. Defaults to "default".
	Alias string `json:"alias" yaml:"alias"`

	// Options carries backend-specific settings (e.g. "schema" for db2,
	// "max_conns" for postgres).
	Options Options `json:"options" yaml:"options"`

	// SupportsTransactions is a runtime capability flag set by test database
	// setup; it is not read from configuration files.
	SupportsTransactions bool `json:"-" yaml:"-"`
}

// AliasOrDefault returns Alias, or "default" when unset.
func (d *Database) AliasOrDefault() string {
	if a := strings.TrimSpace(d.Alias); a != "" {
		return a
	}
	return "default"
}

// Runtime controls output detail.
type Runtime struct {
	// Verbosity: 0 quiet, 1 progress, 2 statements, 3 debug.
	Verbosity int `json:"verbosity" yaml:"verbosity"`
}

// Metrics selects and configures the metrics backend.
type Metrics struct {
	// Backend is "none", "pushgateway" or "datadog". Empty means none.
	Backend string `json:"backend" yaml:"backend"`

	// Job labels every metric and groups Pushgateway pushes. Defaults to "db2schema".
	Job string `json:"job" yaml:"job"`

	PushgatewayURL string   `json:"pushgateway_url" yaml:"pushgateway_url"`
	DatadogAddr    string   `json:"datadog_addr" yaml:"datadog_addr"`
	DatadogTags    []string `json:"datadog_tags" yaml:"datadog_tags"`
}

// JobOrDefault returns Job, or "db2schema" when unset.
func (m Metrics) JobOrDefault() string {
	if j := strings.TrimSpace(m.Job); j != "" {
		return j
	}
	return "db2schema"
}

// Decode parses data as YAML when yamlFormat is set, otherwise as JSON.
// Unknown keys are rejected in both formats.
func Decode(data []byte, yamlFormat bool) (File, error) {
	var f File
	if yamlFormat {
		if err := yaml.UnmarshalStrict(data, &f); err != nil {
			return File{}, fmt.Errorf("decode yaml config: %w", err)
		}
		f.Database.Options = normalizeYAML(f.Database.Options)
		return f, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("decode json config: %w", err)
	}
	return f, nil
}

// Load reads the configuration at path, picking YAML for .yaml/.yml files
// and JSON otherwise. A relative Models path is resolved against the
// configuration file's directory.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	f, err := Decode(data, ext == ".yaml" || ext == ".yml")
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	if f.Models != "" && !filepath.IsAbs(f.Models) {
		f.Models = filepath.Join(filepath.Dir(path), f.Models)
	}
	return f, nil
}

// ApplyEnv overrides settings from the environment: DB2SCHEMA_DSN replaces
// the DSN and METRICS_BACKEND the metrics backend when set.
func (f *File) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("DB2SCHEMA_DSN"); v != "" {
		f.Database.DSN = v
	}
	if v := getenv("METRICS_BACKEND"); v != "" {
		f.Metrics.Backend = v
	}
}

// normalizeYAML converts the map[interface{}]interface{} values yaml.v2
// produces for nested objects into map[string]any so Options behaves the same
// for both formats.
func normalizeYAML(o Options) Options {
	if o == nil {
		return Options{}
	}
	for k, v := range o {
		o[k] = normalizeValue(v)
	}
	return o
}

func normalizeValue(v any) any {
	switch vv := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]any, len(vv))
		for k, x := range vv {
			m[fmt.Sprint(k)] = normalizeValue(x)
		}
		return m
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeValue(vv[i])
		}
		return vv
	default:
		return v
	}
}
