package extract

import (
	"strings"
	"testing"

	"github.com/chaguan/chaguan/internal/model"
)

func TestPatternDetector_AttributedStatistic(t *testing.T) {
	detector := NewPatternDetector()

	claims := detector.Detect("据报道，该药物在临床研究中显示91%的有效率。")
	if len(claims) == 0 {
		t.Fatal("expected at least one claim for an attributed statistic")
	}

	claim := claims[0]
	if claim.RiskLevel == model.RiskNone {
		t.Errorf("attributed percentage claim must carry risk, got %q", claim.RiskLevel)
	}
	if claim.Type != model.ClaimTypeFactual {
		t.Errorf("claim type = %q, want factual", claim.Type)
	}
	if claim.Language != "zh-CN" {
		t.Errorf("language = %q, want zh-CN", claim.Language)
	}
	if claim.Status != model.StatusUnverified {
		t.Errorf("fresh claim status = %q, want unverified", claim.Status)
	}
}

func TestPatternDetector_NoTriggersNoClaims(t *testing.T) {
	detector := NewPatternDetector()

	inputs := []string{
		"",
		"今天天气很好，我们在公园散步，看见了很多花。",
		"just a plain sentence with nothing checkable about it at all",
	}
	for _, input := range inputs {
		if claims := detector.Detect(input); len(claims) != 0 {
			t.Errorf("Detect(%q) = %d claims, want 0", input, len(claims))
		}
	}
}

func TestPatternDetector_LengthBand(t *testing.T) {
	detector := NewPatternDetector()

	// Trigger inside a unit shorter than 20 runes
	if claims := detector.Detect("据新华社报道了。"); len(claims) != 0 {
		t.Errorf("unit below minimum length produced %d claims", len(claims))
	}

	// A unit above 500 runes is rejected even when a trigger matches
	long := "据报道，" + strings.Repeat("这是一段填充文字", 80) + "。"
	if claims := detector.Detect(long); len(claims) != 0 {
		t.Errorf("unit above maximum length produced %d claims", len(claims))
	}
}

func TestPatternDetector_SentenceSplitting(t *testing.T) {
	detector := NewPatternDetector()

	text := "据报道，该公司去年的营收增长了百分之三十以上。今天天气很好没有别的内容可言了。研究表明这种材料的强度是普通钢材的五倍左右。"
	claims := detector.Detect(text)
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims from 3 sentences, got %d", len(claims))
	}
	for _, claim := range claims {
		if strings.ContainsAny(claim.Text[:len(claim.Text)-len("。")], "。") {
			t.Errorf("claim spans multiple sentences: %q", claim.Text)
		}
	}
}

func TestPatternDetector_Positions(t *testing.T) {
	detector := NewPatternDetector()

	prefix := "前面是一段没有触发词的普通文字内容。"
	target := "研究表明该方法能够显著提升检测的准确率。"
	claims := detector.Detect(prefix + target)
	if len(claims) != 1 {
		t.Fatalf("expected exactly 1 claim, got %d", len(claims))
	}

	wantStart := len([]rune(prefix))
	if claims[0].Position.Start != wantStart {
		t.Errorf("position start = %d, want %d", claims[0].Position.Start, wantStart)
	}
	if got := claims[0].Position.End - claims[0].Position.Start; got != len([]rune(target)) {
		t.Errorf("position span = %d runes, want %d", got, len([]rune(target)))
	}
}

func TestPatternDetector_TypeClassification(t *testing.T) {
	detector := NewPatternDetector()

	tests := []struct {
		text string
		want model.ClaimType
	}{
		{"专家称这种做法存在严重的安全隐患需要警惕。", model.ClaimTypeQuote},
		{"该项目将会在今后几年内在全国范围内推广开来。", model.ClaimTypePrediction},
		{"我认为这个政策的实际效果还有待进一步观察。", model.ClaimTypeOpinion},
		{"官方宣布新的管理办法已经在上周正式生效了。", model.ClaimTypeFactual},
	}
	for _, tt := range tests {
		claims := detector.Detect(tt.text)
		if len(claims) == 0 {
			t.Errorf("Detect(%q) found no claims", tt.text)
			continue
		}
		if claims[0].Type != tt.want {
			t.Errorf("Detect(%q) type = %q, want %q", tt.text, claims[0].Type, tt.want)
		}
	}
}

func TestPatternDetector_EnglishTriggers(t *testing.T) {
	detector := NewPatternDetector()

	claims := detector.Detect("According to the ministry, exports grew by 12% last year.")
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].Language != "en" {
		t.Errorf("language = %q, want en", claims[0].Language)
	}
}

func TestRiskFromConfidence_Monotonic(t *testing.T) {
	order := map[model.RiskLevel]int{
		model.RiskNone: 0, model.RiskLow: 1, model.RiskMedium: 2, model.RiskHigh: 3,
	}
	prev := model.RiskNone
	for c := 0.0; c <= 1.0; c += 0.05 {
		risk := model.RiskFromConfidence(c)
		if order[risk] < order[prev] {
			t.Fatalf("risk mapping not monotonic: %v at confidence %.2f after %v", risk, c, prev)
		}
		prev = risk
	}
}

func TestExtractEntities(t *testing.T) {
	entities := extractEntities(`专家称「量子计算机」的算力提升了100倍，According to World Health Organization.`)

	want := map[string]bool{"量子计算机": false, "World Health Organization": false}
	for _, e := range entities {
		if _, ok := want[e]; ok {
			want[e] = true
		}
	}
	for entity, found := range want {
		if !found {
			t.Errorf("expected entity %q in %v", entity, entities)
		}
	}
}
