package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Kind namespaces cache keys so unrelated lookups never collide even with
// truncated digests.
type Kind string

const (
	KindVerify    Kind = "verify"
	KindSearch    Kind = "search"
	KindTranslate Kind = "translate"
	KindEmbed     Kind = "embed"
)

// hashPrefixLen is the number of hex characters kept from the digest.
// 16 hex chars (64 bits) keeps collision probability negligible at
// expected cache sizes.
const hashPrefixLen = 16

// Derive computes a namespaced key from the given parts. Identical inputs
// always yield the identical key.
func Derive(kind Kind, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return string(kind) + ":" + hex.EncodeToString(sum[:])[:hashPrefixLen]
}

// Verification derives the cache key for a (claim, language) pair.
// The claim text is normalized first, so claims differing only in case,
// spacing, or punctuation share one key.
func Verification(claim, language string) string {
	return Derive(KindVerify, Normalize(claim), language)
}

// Search derives the cache key for a search query over a source set.
// Sources are sorted so their order never affects the key.
func Search(query string, sources []string) string {
	sorted := append([]string(nil), sources...)
	sort.Strings(sorted)
	return Derive(KindSearch, Normalize(query), strings.Join(sorted, ","))
}

// Translation derives the cache key for a translation request
func Translation(text, sourceLang, targetLang string) string {
	return Derive(KindTranslate, Normalize(text), sourceLang, targetLang)
}

// Embedding derives the cache key for an embedding request
func Embedding(text, model string) string {
	return Derive(KindEmbed, Normalize(text), model)
}
