// AngelaMos | 2026
// slug.go

package core

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxSlugBase = 48

// Slugify lowercases s, collapses runs of non-alphanumerics into single
// hyphens, and appends a short random suffix so concurrent callers with
// the same display name never collide.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}

		if b.Len() >= maxSlugBase {
			break
		}
	}

	base := strings.Trim(b.String(), "-")
	suffix := uuid.New().String()[:8]

	if base == "" {
		return suffix
	}

	return base + "-" + suffix
}
