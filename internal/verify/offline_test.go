package verify

import (
	"context"
	"testing"

	"github.com/chaguan/chaguan/internal/model"
)

func TestOfflineVerifier_AlwaysUnverified(t *testing.T) {
	v := NewOfflineVerifier()

	result, err := v.Verify(context.Background(), model.VerificationRequest{
		Text:     "专家表示，这种新材料将会彻底改变电池行业的格局。",
		Language: "zh-CN",
	})
	if err != nil {
		t.Fatalf("offline verify must not fail: %v", err)
	}
	if result.Verdict != model.VerdictUnverified {
		t.Errorf("verdict = %q, want unverified", result.Verdict)
	}
	if result.Confidence != offlineConfidence {
		t.Errorf("confidence = %v, want %v", result.Confidence, offlineConfidence)
	}
	if !result.Offline {
		t.Error("offline result must be marked Offline")
	}
	if result.Cached {
		t.Error("offline result must not be marked Cached")
	}
	if len(result.EvidenceChain) != 0 {
		t.Errorf("offline result carries evidence: %+v", result.EvidenceChain)
	}
	if result.Summary == "" {
		t.Error("offline result must explain itself")
	}
}

func TestOfflineVerifier_DetectsLanguageWhenMissing(t *testing.T) {
	v := NewOfflineVerifier()

	result, err := v.Verify(context.Background(), model.VerificationRequest{
		Text: "研究表明，这种做法存在明显的安全隐患。",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Language != "zh-CN" {
		t.Errorf("language = %q, want zh-CN", result.Language)
	}
}

func TestOfflineVerifier_FlagsTranslationMarkers(t *testing.T) {
	v := NewOfflineVerifier()

	result, err := v.Verify(context.Background(), model.VerificationRequest{
		Text:     "据外媒报道，该国经济今年将收缩百分之十。",
		Language: "zh-CN",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !result.MistranslationDetected {
		t.Error("translation markers must set the mistranslation flag")
	}
	if result.MistranslationDetails == "" {
		t.Error("flagged result must carry details")
	}
}
