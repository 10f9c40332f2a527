// internal/app/system/slug/slug.go
package slug

import (
	"context"
	"fmt"
	"strings"
)

// removed is the punctuation stripped from slugs entirely; every other
// non-alphanumeric run collapses to a single hyphen.
const removed = `*+~.()'"!?:@#$%^&\`

// Make derives a URL-safe slug from the given parts (typically title and
// username): lowercased, trimmed, punctuation removed, whitespace runs
// replaced by single hyphens.
func Make(parts ...string) string {
	joined := strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))

	var b strings.Builder
	b.Grow(len(joined))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case strings.ContainsRune(removed, r):
			// dropped
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// ExistsFunc reports whether a slug is already taken.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Unique resolves collisions by retrying with incrementing numeric
// suffixes (base, base-1, base-2, ...) until exists reports free.
//
// The check-then-insert window is closed by the unique index on the slug
// field; a concurrent duplicate surfaces as a duplicate-key conflict at
// insert time rather than corrupting data.
func Unique(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}
