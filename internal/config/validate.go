package config

import (
	"fmt"
	"net/url"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a File.
//
// Path is a dotted path into the config (e.g. "database.kind",
// "metrics.pushgateway_url"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether issues contains at least one SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidateFile performs static validation of a decoded File. It does not
// mutate f. Callers decide whether warnings are fatal.
func ValidateFile(f File) []Issue {
	var issues []Issue
	issues = append(issues, validateDatabase(f.Database)...)
	if strings.TrimSpace(f.Models) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "models",
			Message:  "models must name a models file",
		})
	}
	issues = append(issues, validateRuntime(f.Runtime)...)
	issues = append(issues, validateMetrics(f.Metrics)...)
	return issues
}

func validateDatabase(d Database) []Issue {
	var issues []Issue

	if strings.TrimSpace(d.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "database.kind",
			Message:  "database.kind must not be empty",
		})
	} else {
		known := map[string]struct{}{
			"db2":      {},
			"postgres": {},
			"mysql":    {},
			"mssql":    {},
			"sqlite":   {},
		}
		if _, ok := known[d.Kind]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "database.kind",
				Message:  fmt.Sprintf("unknown database kind %q; ensure a matching backend is registered", d.Kind),
			})
		} else if !d.AcceptsDB2DDL() {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "database.kind",
				Message:  fmt.Sprintf("kind %q cannot run DB2 DDL; only tables and cleanup are supported, create-test-db is refused", d.Kind),
			})
		}
	}

	if strings.TrimSpace(d.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "database.dsn",
			Message:  "database.dsn must not be empty (or set DB2SCHEMA_DSN)",
		})
	}

	if _, err := d.TestDatabaseName(); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "database.name",
			Message:  "one of database.test_name or database.name must be set",
		})
	} else if strings.TrimSpace(d.TestName) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "database.test_name",
			Message:  "test_name is empty; test runs will drop tables in the primary database",
		})
	}

	return issues
}

func validateRuntime(r Runtime) []Issue {
	var issues []Issue
	if r.Verbosity < 0 || r.Verbosity > 3 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.verbosity",
			Message:  fmt.Sprintf("verbosity=%d; must be between 0 and 3", r.Verbosity),
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch strings.ToLower(strings.TrimSpace(m.Backend)) {
	case "", "none":
	case "pushgateway", "prom", "prometheus":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend requires metrics.pushgateway_url",
			})
		} else if u, err := url.Parse(m.PushgatewayURL); err != nil || u.Scheme == "" || u.Host == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  fmt.Sprintf("pushgateway_url %q is not an absolute URL", m.PushgatewayURL),
			})
		}
	case "datadog", "dogstatsd":
		if strings.TrimSpace(m.DatadogAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "metrics.datadog_addr",
				Message:  "datadog_addr is empty; defaulting to 127.0.0.1:8125",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", m.Backend),
		})
	}

	return issues
}
