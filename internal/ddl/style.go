package ddl

// Style decorates DDL tokens for display. It is purely cosmetic: statements
// rendered with any Style are semantically identical.
type Style interface {
	Keyword(s string) string
	Table(s string) string
	Field(s string) string
	ColType(s string) string
}

// PlainStyle returns tokens unchanged. Use it for anything that is executed.
type PlainStyle struct{}

func (PlainStyle) Keyword(s string) string { return s }
func (PlainStyle) Table(s string) string   { return s }
func (PlainStyle) Field(s string) string   { return s }
func (PlainStyle) ColType(s string) string { return s }

const (
	ansiReset      = "\x1b[0m"
	ansiBoldYellow = "\x1b[1;33m"
	ansiBoldGreen  = "\x1b[1;32m"
	ansiGreen      = "\x1b[32m"
)

// ColorStyle wraps tokens in ANSI colour codes for terminal output.
type ColorStyle struct{}

func (ColorStyle) Keyword(s string) string { return ansiBoldYellow + s + ansiReset }
func (ColorStyle) Table(s string) string   { return ansiBoldGreen + s + ansiReset }
func (ColorStyle) Field(s string) string   { return ansiBoldGreen + s + ansiReset }
func (ColorStyle) ColType(s string) string { return ansiGreen + s + ansiReset }
