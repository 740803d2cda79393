package slug

import (
	"strings"

	"github.com/google/uuid"
)

// Make genera un slug URL-safe a partir de un nombre o título. Si el
// texto no deja ningún carácter utilizable, se usa un sufijo aleatorio
// para no violar el índice único.
func Make(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == 'á':
			b.WriteRune('a')
			lastDash = false
		case r == 'é':
			b.WriteRune('e')
			lastDash = false
		case r == 'í':
			b.WriteRune('i')
			lastDash = false
		case r == 'ó':
			b.WriteRune('o')
			lastDash = false
		case r == 'ú', r == 'ü':
			b.WriteRune('u')
			lastDash = false
		case r == 'ñ':
			b.WriteRune('n')
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return uuid.NewString()[:8]
	}
	return out
}
