package verify

import (
	"context"
	"time"

	"github.com/chaguan/chaguan/internal/extract"
	"github.com/chaguan/chaguan/internal/model"
)

// offlineConfidence is the fixed confidence of evidence-free local
// verdicts; it stays well below anything the remote service returns.
const offlineConfidence = 0.3

// OfflineVerifier produces a best-effort local verdict when the remote
// service is unreachable. Deterministic, evidence-free, and explicitly
// marked offline; it never fails.
type OfflineVerifier struct{}

// NewOfflineVerifier creates the local fallback verdict path
func NewOfflineVerifier() *OfflineVerifier {
	return &OfflineVerifier{}
}

// Verify produces the degraded local result for a claim
func (v *OfflineVerifier) Verify(_ context.Context, req model.VerificationRequest) (*model.VerificationResult, error) {
	language := req.Language
	if language == "" {
		language = extract.DetectLanguage(req.Text)
	}

	mistranslated := extract.LooksTranslated(req.Text)

	result := &model.VerificationResult{
		ID:                     model.NewID("verif"),
		Verdict:                model.VerdictUnverified,
		Confidence:             offlineConfidence,
		Summary:                offlineSummary(language),
		EvidenceChain:          []model.Evidence{},
		OriginalClaim:          req.Text,
		Language:               language,
		MistranslationDetected: mistranslated,
		CreatedAt:              time.Now().UTC(),
		Offline:                true,
	}
	if mistranslated {
		result.MistranslationDetails = mistranslationNote(language)
	}
	return result, nil
}

func offlineSummary(language string) string {
	if language == "zh-CN" {
		return "当前无法连接核查服务，该声明暂时无法验证。请在网络恢复后重试。"
	}
	return "The verification service is unreachable; this claim could not be checked. Try again once connectivity is restored."
}

func mistranslationNote(language string) string {
	if language == "zh-CN" {
		return "文本带有转译痕迹，原始出处的说法可能与此不同。"
	}
	return "The text carries translation markers; the original source may phrase this differently."
}
