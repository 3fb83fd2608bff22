package extract

import "regexp"

// scriptRange is a contiguous Unicode block attributed to one language
type scriptRange struct {
	lo, hi rune
	code   string
}

var scriptRanges = []scriptRange{
	{0x4E00, 0x9FFF, "zh-CN"}, // CJK Unified Ideographs
	{0x3040, 0x309F, "ja"},    // Hiragana
	{0x30A0, 0x30FF, "ja"},    // Katakana
	{0xAC00, 0xD7AF, "ko"},    // Hangul
	{0x0600, 0x06FF, "ar"},    // Arabic
	{0x0400, 0x04FF, "ru"},    // Cyrillic
}

// translationMarkers are phrasings that suggest the text was translated
// from a foreign-language source.
var translationMarkers = []*regexp.Regexp{
	regexp.MustCompile(`据.*?外媒`),
	regexp.MustCompile(`翻译自`),
	regexp.MustCompile(`原文来自`),
	regexp.MustCompile(`(英|日|韩|法|德|俄)媒`),
}

// DetectLanguage guesses the dominant language of text by script counting.
// Hiragana/katakana beat ideographs so Japanese text with kanji is not
// misread as Chinese. Latin-only text defaults to English.
func DetectLanguage(text string) string {
	counts := make(map[string]int)
	latin := 0

	for _, r := range text {
		matched := false
		for _, sr := range scriptRanges {
			if r >= sr.lo && r <= sr.hi {
				counts[sr.code]++
				matched = true
				break
			}
		}
		if !matched && ((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			latin++
		}
	}

	if counts["ja"] > 0 {
		return "ja"
	}

	best, bestCount := "en", latin
	for code, count := range counts {
		if count > bestCount {
			best, bestCount = code, count
		}
	}
	return best
}

// LooksTranslated reports whether text carries translation markers,
// a cheap signal for the mistranslation-detection path.
func LooksTranslated(text string) bool {
	for _, marker := range translationMarkers {
		if marker.MatchString(text) {
			return true
		}
	}
	return false
}
