package llm

import (
	"strings"
	"testing"

	"github.com/chaguan/chaguan/internal/model"
)

func TestParseAnswer_PlainJSON(t *testing.T) {
	req := model.VerificationRequest{Text: "据报道，该市去年新增了三条地铁线路。", Language: "zh-CN"}
	raw := `{"verdict": "partly_true", "confidence": 0.7, "summary": "实际新增两条。"}`

	result, err := ParseAnswer(raw, req)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.Verdict != model.VerdictPartlyTrue {
		t.Errorf("verdict = %q, want partly_true", result.Verdict)
	}
	if result.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7", result.Confidence)
	}
	if result.OriginalClaim != req.Text || result.Language != "zh-CN" {
		t.Error("request fields not carried into result")
	}
	if result.Cached || result.Offline {
		t.Error("fresh provider result must not be cached or offline")
	}
}

func TestParseAnswer_CodeFencedJSON(t *testing.T) {
	raw := "Here is my assessment:\n```json\n{\"verdict\": \"false\", \"confidence\": 0.9, \"summary\": \"Incorrect.\"}\n```\n"

	result, err := ParseAnswer(raw, model.VerificationRequest{Text: "x"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.Verdict != model.VerdictFalse {
		t.Errorf("verdict = %q, want false", result.Verdict)
	}
}

func TestParseAnswer_NoJSON(t *testing.T) {
	if _, err := ParseAnswer("I cannot assess this claim.", model.VerificationRequest{Text: "x"}); err == nil {
		t.Error("prose without JSON must fail")
	}
}

func TestParseAnswer_CapsUnverifiedConfidence(t *testing.T) {
	raw := `{"verdict": "unverified", "confidence": 0.95, "summary": "No idea."}`

	result, err := ParseAnswer(raw, model.VerificationRequest{Text: "x"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.Confidence > 0.5 {
		t.Errorf("unverified confidence = %v, want <= 0.5", result.Confidence)
	}
}

func TestParseAnswer_UnknownVerdictFoldsToUnverified(t *testing.T) {
	raw := `{"verdict": "probably", "confidence": 0.6, "summary": "..."}`

	result, err := ParseAnswer(raw, model.VerificationRequest{Text: "x"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.Verdict != model.VerdictUnverified {
		t.Errorf("verdict = %q, want unverified", result.Verdict)
	}
}

func TestBuildPrompt_ContainsClaimAndContract(t *testing.T) {
	prompt := BuildPrompt(model.VerificationRequest{Text: "专家称该数据被夸大了十倍。", Language: "zh-CN"})

	if !strings.Contains(prompt, "专家称该数据被夸大了十倍。") {
		t.Error("prompt must contain the claim text")
	}
	for _, token := range []string{"verdict", "confidence", "summary", "unverified"} {
		if !strings.Contains(prompt, token) {
			t.Errorf("prompt missing %q", token)
		}
	}
}

func TestNewProvider_DisabledAndUnknown(t *testing.T) {
	p, err := NewProvider(Config{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("empty provider = (%v, %v), want (nil, nil)", p, err)
	}
	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("unknown provider must error")
	}
}
