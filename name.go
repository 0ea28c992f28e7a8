package wadlevel

import (
	"bytes"
	"strings"
)

// Name8 is the WAD eight-character name type. Short names are
// null-terminated; the padding bytes carry no meaning.
type Name8 [8]byte

// String converts Name8 to a string, dropping the trailing padding.
func (n Name8) String() string {
	i := bytes.IndexByte(n[:], 0)
	if i == -1 {
		i = len(n)
	}
	return string(n[:i])
}

// Canonical returns the canonical form of the name: trailing padding
// stripped and upper-cased. Names are case-insensitive on disk; every name
// field is canonicalized exactly once at load, before it is exposed.
func (n Name8) Canonical() string {
	return strings.ToUpper(n.String())
}
