// Package keys builds memo cache keys for derived cell sets.
package keys

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Key composes a memo key from the operation name, resolution, scale and the
// raw geometry the derivation ran against. The geometry is folded in as a
// hash so a changed stored polygon can never serve a stale derivation.
func Key(op string, res int, scale, geometry string) string {
	opNorm := sanitize(strings.TrimSpace(op))
	scaleNorm := sanitize(strings.TrimSpace(scale))
	sum := xxhash.Sum64String(geometry)
	return fmt.Sprintf("%s:%d:%s:g=%016x", opNorm, res, scaleNorm, sum)
}

func sanitize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		out := rune(0)
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			out = '_'
		case isAlphaNum(r) || r == '_' || r == '-':
			out = r
		default:
			out = '-'
		}
		if (out == '_' || out == '-') && out == prev {
			continue
		}
		b.WriteRune(out)
		prev = out
	}
	return b.String()
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		unicode.IsDigit(r)
}
