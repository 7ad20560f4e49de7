// Package db2 implements the IBM DB2 storage.Repository on top of the
// go_ibm_db driver. The driver needs cgo and the DB2 CLI client, so the
// backend is only compiled with the "db2" build tag; the DSN helpers here are
// pure Go.
package db2

import (
	"fmt"
	"strings"
)

// tablesQuery lists regular tables (TYPE 'T') in the connection's current
// schema.
const tablesQuery = `SELECT TABNAME FROM SYSCAT.TABLES WHERE TABSCHEMA = CURRENT SCHEMA AND TYPE = 'T' ORDER BY TABNAME`

// withCurrentSchema appends CurrentSchema=<schema> to a keyword DSN
// ("HOSTNAME=...;DATABASE=...;") unless the DSN already sets it. Every pooled
// connection then resolves unqualified names in the same schema.
func withCurrentSchema(dsn, schema string) (string, error) {
	schema = strings.TrimSpace(schema)
	if schema == "" {
		return dsn, nil
	}
	if strings.ContainsAny(schema, ";=") {
		return "", fmt.Errorf("db2: invalid schema %q", schema)
	}
	for _, kv := range strings.Split(dsn, ";") {
		k, _, _ := strings.Cut(kv, "=")
		if strings.EqualFold(strings.TrimSpace(k), "CurrentSchema") {
			return dsn, nil
		}
	}
	out := strings.TrimRight(dsn, " ")
	if out != "" && !strings.HasSuffix(out, ";") {
		out += ";"
	}
	return out + "CurrentSchema=" + strings.ToUpper(schema) + ";", nil
}
