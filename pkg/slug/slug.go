// Package slug derives URL-safe identifiers from business names.
package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// Make derives a slug from a name: lowercased, whitespace becomes a
// hyphen, anything that is not a letter, digit, underscore or hyphen is
// dropped. Letters in any script are kept, so "El Rincón, Dominicano!"
// yields "el-rincón-dominicano".
func Make(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lowered))
	lastHyphen := false
	for _, r := range lowered {
		switch {
		case unicode.IsSpace(r), r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
			lastHyphen = false
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// WithSuffix returns the n-th collision candidate for a base slug.
// n starts at 2: "el-criollo" -> "el-criollo-2".
func WithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}
