package toc

import (
	"strings"
	"unicode"
)

// Slugify lower-cases text and keeps only ASCII letters, digits, '_', '-' and
// whitespace; whitespace runs become a single '-', repeated '-' collapse and
// leading or trailing '-' are removed. Text with nothing left returns "".
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingDash := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r) || r == '-':
			pendingDash = true
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
