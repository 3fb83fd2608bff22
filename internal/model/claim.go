package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ClaimType categorizes the nature of a detected claim
type ClaimType string

const (
	ClaimTypeFactual    ClaimType = "factual"    // Reported facts, statistics, attributed statements
	ClaimTypeOpinion    ClaimType = "opinion"    // First-person judgements
	ClaimTypePrediction ClaimType = "prediction" // Statements about the future
	ClaimTypeQuote      ClaimType = "quote"      // Attributed speech
	ClaimTypeManual     ClaimType = "manual"     // User-selected text, not detector output
)

// RiskLevel indicates how much verification attention a claim deserves
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// VerificationStatus tracks a claim through the coordinator state machine:
// unverified -> pending -> {verified, failed}
type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusPending    VerificationStatus = "pending"
	StatusVerified   VerificationStatus = "verified"
	StatusFailed     VerificationStatus = "failed"
)

// Position locates a claim within the segment it was detected in
type Position struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Claim represents a short text span flagged as potentially verifiable.
// Claims live only in per-page memory; they are never persisted directly.
type Claim struct {
	ID         string              `json:"id"`
	Text       string              `json:"text"`
	Type       ClaimType           `json:"type"`
	Entities   []string            `json:"entities"`
	Language   string              `json:"language"`
	Confidence float64             `json:"confidence"`
	Position   Position            `json:"position"`
	RiskLevel  RiskLevel           `json:"risk_level"`
	Status     VerificationStatus  `json:"verification_status"`
	Result     *VerificationResult `json:"verification_result,omitempty"`
}

// NewManualClaim wraps user-selected text in a Claim for direct verification
func NewManualClaim(text, language string) *Claim {
	return &Claim{
		ID:         NewID("claim"),
		Text:       text,
		Type:       ClaimTypeManual,
		Entities:   []string{},
		Language:   language,
		Confidence: 1.0,
		RiskLevel:  RiskMedium,
		Status:     StatusUnverified,
	}
}

// RiskFromConfidence maps a confidence score to a risk tier.
// The mapping is monotonic: higher confidence never lowers the tier.
func RiskFromConfidence(confidence float64) RiskLevel {
	switch {
	case confidence >= 0.75:
		return RiskHigh
	case confidence >= 0.6:
		return RiskMedium
	case confidence >= 0.45:
		return RiskLow
	default:
		return RiskNone
	}
}

// NewID generates a prefixed, roughly time-ordered identifier
func NewID(prefix string) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixNano(), hex.EncodeToString(buf))
}
