package ddl

import (
	"fmt"
	"unicode/utf8"

	"github.com/zeebo/xxh3"
)

// hashLen is the number of hex digits appended to a truncated identifier.
const hashLen = 4

// TruncateName shortens name to at most length bytes. Names that already fit
// are returned unchanged. Longer names keep at most their first
// length-hashLen bytes, cut on a rune boundary, followed by a hashLen-digit
// hash of the full name, so distinct long names
// stay distinct with high probability and the result is deterministic.
func TruncateName(name string, length int) string {
	if length <= hashLen || len(name) <= length {
		return name
	}
	cut := length - hashLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut] + digest(name)[:hashLen]
}

func digest(s string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(s))
}

// pairHash is a short stable hash of two identifiers, used to name foreign
// key constraints.
func pairHash(a, b string) string {
	return digest(a + "\x00" + b)[:8]
}
