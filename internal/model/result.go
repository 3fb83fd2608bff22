package model

import "time"

// Verdict is the categorical outcome of verifying a claim
type Verdict string

const (
	VerdictTrue       Verdict = "true"
	VerdictFalse      Verdict = "false"
	VerdictPartlyTrue Verdict = "partly_true"
	VerdictUnverified Verdict = "unverified"
)

// Evidence is a single source in a verification evidence chain
type Evidence struct {
	ID               string  `json:"id"`
	Source           string  `json:"source"`
	SourceURL        string  `json:"source_url"`
	Title            string  `json:"title"`
	Snippet          string  `json:"snippet"`
	PublishedAt      string  `json:"published_at,omitempty"`
	CredibilityScore float64 `json:"credibility_score"`
	Language         string  `json:"language"`
}

// OriginalSource identifies the text a suspected mistranslation came from
type OriginalSource struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Excerpt  string `json:"excerpt"`
}

// VerificationResult is the immutable outcome of verifying one claim.
// Cached is set true only by the cache read path, never by a producer.
// Offline marks results produced by the local fallback verifier.
type VerificationResult struct {
	ID                     string          `json:"id"`
	Verdict                Verdict         `json:"verdict"`
	Confidence             float64         `json:"confidence"`
	Summary                string          `json:"summary"`
	EvidenceChain          []Evidence      `json:"evidence_chain"`
	OriginalClaim          string          `json:"original_claim"`
	Language               string          `json:"language"`
	MistranslationDetected bool            `json:"mistranslation_detected"`
	MistranslationDetails  string          `json:"mistranslation_details,omitempty"`
	OriginalSource         *OriginalSource `json:"original_source,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	Cached                 bool            `json:"cached"`
	Offline                bool            `json:"offline,omitempty"`
}

// VerifyOptions tune a single verification request
type VerifyOptions struct {
	CrossLingual bool `json:"cross_lingual,omitempty"`
	MaxSources   int  `json:"max_sources,omitempty"`
	ForceRefresh bool `json:"force_refresh,omitempty"`
}

// VerificationRequest is the wire contract consumed by verification backends
type VerificationRequest struct {
	Text     string         `json:"text"`
	Language string         `json:"language,omitempty"`
	Options  *VerifyOptions `json:"options,omitempty"`
}
