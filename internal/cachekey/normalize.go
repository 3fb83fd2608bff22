// Package cachekey derives deterministic cache keys from normalized claim
// text so that trivially reworded duplicates share one cache entry.
package cachekey

import "strings"

// Normalize canonicalizes text for hashing and comparison: lower-cased,
// whitespace-collapsed, stripped of everything outside word characters and
// CJK ideographs. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if isKeptRune(r) {
			b.WriteRune(r)
		}
	}

	// Collapsing whitespace after stripping keeps the function idempotent:
	// removed punctuation can never leave a double space behind.
	return strings.Join(strings.Fields(b.String()), " ")
}

// isKeptRune reports whether a rune survives normalization: ASCII word
// characters, whitespace, and the CJK Unified Ideographs block.
func isKeptRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x4E00 && r <= 0x9FFF:
		return true
	}
	return false
}
