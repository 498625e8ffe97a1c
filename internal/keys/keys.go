package keys

import (
	"strings"
	"unicode"
)

// CharacterKeyFromName produces a stable roster key from a display name.
// Behavior: trims, lower-cases, collapses runs of spaces, dashes and
// punctuation into single underscores. "Kamado Tanjiro" -> "kamado_tanjiro".
func CharacterKeyFromName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// Normalize lower-cases and trims a key supplied by a client.
func Normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
