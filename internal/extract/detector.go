package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/chaguan/chaguan/internal/model"
)

// Detector is the pluggable claim-detection strategy. The pattern
// implementation below is a heuristic stand-in; a statistical model can
// replace it without touching callers.
type Detector interface {
	Detect(text string) []*model.Claim
}

// Rule is one lexical trigger: a pattern signaling a checkable statement,
// the claim type it implies, and its heuristic confidence.
type Rule struct {
	Pattern    *regexp.Regexp
	Type       model.ClaimType
	Confidence float64
}

// DefaultRules covers reported speech, attribution, statistics, temporal
// references, predictions and opinion markers, in Chinese and English.
func DefaultRules() []Rule {
	return []Rule{
		{regexp.MustCompile(`据.{0,12}报道`), model.ClaimTypeFactual, 0.7},
		{regexp.MustCompile(`根据.{0,12}(显示|表明|证明)`), model.ClaimTypeFactual, 0.8},
		{regexp.MustCompile(`研究(表明|发现|显示)`), model.ClaimTypeFactual, 0.8},
		{regexp.MustCompile(`专家(称|说|表示)`), model.ClaimTypeQuote, 0.6},
		{regexp.MustCompile(`官方(表示|宣布|声明)`), model.ClaimTypeFactual, 0.8},
		{regexp.MustCompile(`数据(显示|表明)`), model.ClaimTypeFactual, 0.8},
		{regexp.MustCompile(`\d+(\.\d+)?%`), model.ClaimTypeFactual, 0.7},
		{regexp.MustCompile(`\d+(万|亿|千|百)`), model.ClaimTypeFactual, 0.6},
		{regexp.MustCompile(`(去年|今年|上个月|本月|明年)`), model.ClaimTypeFactual, 0.5},
		{regexp.MustCompile(`将(会|要|于)`), model.ClaimTypePrediction, 0.5},
		{regexp.MustCompile(`(我认为|我觉得|在我看来)`), model.ClaimTypeOpinion, 0.4},
		{regexp.MustCompile(`(?i)according to`), model.ClaimTypeFactual, 0.7},
		{regexp.MustCompile(`(?i)(study|research|report)s? (shows?|finds?|found|indicates?)`), model.ClaimTypeFactual, 0.8},
		{regexp.MustCompile(`(?i)(experts?|officials?|scientists?) (say|said|claim|announced)`), model.ClaimTypeQuote, 0.6},
		{regexp.MustCompile(`(?i)(last|this) (year|month|week)`), model.ClaimTypeFactual, 0.5},
		{regexp.MustCompile(`(?i)(i think|i believe|in my opinion)`), model.ClaimTypeOpinion, 0.4},
	}
}

// sentence terminators for Chinese and Latin text
func isTerminator(r rune) bool {
	switch r {
	case '。', '！', '？', '.', '!', '?':
		return true
	}
	return false
}

// PatternDetector applies lexical trigger rules to text. Detection never
// fails on malformed input; non-matching text yields no claims.
type PatternDetector struct {
	rules     []Rule
	minLength int
	maxLength int
}

// NewPatternDetector creates a detector with the default rule set and
// the standard 20..500 rune length band.
func NewPatternDetector() *PatternDetector {
	return &PatternDetector{
		rules:     DefaultRules(),
		minLength: 20,
		maxLength: 500,
	}
}

// NewPatternDetectorWithRules creates a detector with a custom rule set
func NewPatternDetectorWithRules(rules []Rule, minLength, maxLength int) *PatternDetector {
	return &PatternDetector{rules: rules, minLength: minLength, maxLength: maxLength}
}

// Detect extracts candidate claims from text. The fast path rejects text
// that matches no trigger at all before any sentence splitting happens.
func (d *PatternDetector) Detect(text string) []*model.Claim {
	if text == "" || d.matchRule(text) == nil {
		return nil
	}

	var claims []*model.Claim
	for _, unit := range splitSentences(text) {
		length := utf8.RuneCountInString(unit)
		if length < d.minLength || length > d.maxLength {
			continue
		}
		rule := d.matchRule(unit)
		if rule == nil {
			continue
		}

		start := runeIndex(text, unit)
		claims = append(claims, &model.Claim{
			ID:         model.NewID("claim"),
			Text:       unit,
			Type:       rule.Type,
			Entities:   extractEntities(unit),
			Language:   DetectLanguage(unit),
			Confidence: rule.Confidence,
			Position:   model.Position{Start: start, End: start + length},
			RiskLevel:  model.RiskFromConfidence(rule.Confidence),
			Status:     model.StatusUnverified,
		})
	}

	return claims
}

// matchRule returns the first rule matching text, or nil
func (d *PatternDetector) matchRule(text string) *Rule {
	for i := range d.rules {
		if d.rules[i].Pattern.MatchString(text) {
			return &d.rules[i]
		}
	}
	return nil
}

// splitSentences splits text into sentence-like units on terminal
// punctuation, keeping the terminator with its sentence.
func splitSentences(text string) []string {
	var units []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if isTerminator(r) {
			if unit := strings.TrimSpace(current.String()); unit != "" {
				units = append(units, unit)
			}
			current.Reset()
		}
	}
	if unit := strings.TrimSpace(current.String()); unit != "" {
		units = append(units, unit)
	}

	return units
}

// runeIndex returns the rune offset of unit within text, or 0 if absent
func runeIndex(text, unit string) int {
	idx := strings.Index(text, unit)
	if idx < 0 {
		return 0
	}
	return utf8.RuneCountInString(text[:idx])
}

var (
	quotedEntity  = regexp.MustCompile(`[「『“"]([^」』”"]{1,40})[」』”"]`)
	properEntity  = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*\b`)
	numericEntity = regexp.MustCompile(`\d+(\.\d+)?(%|万|亿|千|百)?`)
)

// extractEntities pulls quoted spans, proper nouns and figures out of a
// claim. Crude, but enough to give verification backends search anchors.
func extractEntities(text string) []string {
	seen := make(map[string]bool)
	var entities []string

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] || len(entities) >= 10 {
			return
		}
		seen[s] = true
		entities = append(entities, s)
	}

	for _, m := range quotedEntity.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range properEntity.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range numericEntity.FindAllString(text, -1) {
		add(m)
	}

	if entities == nil {
		entities = []string{}
	}
	return entities
}
