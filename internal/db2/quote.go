package db2

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxNameLength is the longest identifier DB2 accepts for tables, columns,
// indexes and constraints.
const MaxNameLength = 128

// QuoteName quotes an identifier the way DB2 stores unquoted names: folded to
// upper case and wrapped in double quotes. Already quoted names are returned
// unchanged when every inner quote is doubled.
//
// A Caser is stateful, so one is built per call.
func QuoteName(name string) string {
	if isQuoted(name) {
		return name
	}
	return `"` + strings.ReplaceAll(cases.Upper(language.Und).String(name), `"`, `""`) + `"`
}

// isQuoted reports whether name is a complete delimited identifier: wrapped in
// double quotes with every inner quote doubled.
func isQuoted(name string) bool {
	if len(name) < 2 || name[0] != '"' || name[len(name)-1] != '"' {
		return false
	}
	return !strings.Contains(strings.ReplaceAll(name[1:len(name)-1], `""`, ""), `"`)
}
