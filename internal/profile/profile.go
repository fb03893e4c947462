package profile

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Initials returns the uppercased first rune of each whitespace-separated
// token of name. A token starting with an undecodable byte contributes '?'.
func Initials(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(token)
		if r == utf8.RuneError {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Colour returns a stable "#rrggbb" colour for name.
// The hash is h = h*31 + b over the UTF-8 bytes, wrapping on overflow; the
// red, green and blue channels are its bits [0:8), [8:16) and [16:24).
func Colour(name string) string {
	var hash uint64
	for i := 0; i < len(name); i++ {
		hash = hash*31 + uint64(name[i])
	}

	r := hash & 0xff
	g := (hash >> 8) & 0xff
	b := (hash >> 16) & 0xff
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
