// Package ident derives C identifiers for packed files and directories.
//
// An identifier is the marker "opack_" followed by the directory prefix and
// the entry name, with every byte outside [A-Za-z0-9] folded to '_'. Folding
// is lossy: "a.b" and "a_b" both become "opack_a_b". See Registry.
package ident

import "strings"

// Marker starts every derived identifier.
const Marker = "opack_"

// Prefix is the chain of directory names above an entry, outermost first.
type Prefix []string

// Append returns a new prefix with name as its innermost segment. The
// receiver is never modified or aliased.
func (p Prefix) Append(name string) Prefix {
	q := make(Prefix, len(p), len(p)+1)
	copy(q, p)
	return append(q, name)
}

func (p Prefix) String() string {
	return strings.Join(p, "/")
}

// Derive returns the identifier for name under prefix. An empty name yields
// the identifier of the directory the prefix describes.
func Derive(prefix Prefix, name string) string {
	p := prefix.String()

	var b strings.Builder
	b.Grow(len(Marker) + len(p) + len(name) + 1)
	b.WriteString(Marker)
	b.WriteString(p)
	if p != "" && name != "" {
		b.WriteByte('_')
	}
	b.WriteString(name)
	return Fold(b.String())
}

// Fold replaces every byte outside [A-Za-z0-9] with '_'. Multi-byte UTF-8
// sequences fold to one '_' per byte.
func Fold(s string) string {
	out := []byte(s)
	for i, c := range out {
		if !isAlnum(c) {
			out[i] = '_'
		}
	}
	return string(out)
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
