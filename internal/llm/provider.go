// Package llm verifies claims with a language model when no dedicated
// verification service is available. Providers return the same result
// shape as the remote client, so the coordinator treats them alike.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chaguan/chaguan/internal/model"
)

// Provider is a model backend able to assess a claim
type Provider interface {
	// Name returns the provider name
	Name() string

	// Verify assesses one claim and returns a verdict
	Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationResult, error)

	// IsAvailable reports whether the backend is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout per request
	Timeout time.Duration

	// MaxTokens for response generation
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// BuildPrompt constructs the verification prompt. The model must answer
// with a single JSON object so parsing stays deterministic.
func BuildPrompt(req model.VerificationRequest) string {
	language := req.Language
	if language == "" {
		language = "unknown"
	}
	return fmt.Sprintf(`You are a fact-checking assistant. Assess the following claim.

Claim (language: %s):
%s

Rules:
1. Judge only what the claim asserts; do not broaden it.
2. If you lack reliable knowledge, answer "unverified" - never guess.
3. "partly_true" means the core is accurate but details are wrong or missing context.
4. Write the summary in the claim's language.

Answer with ONLY a JSON object, no prose around it:
{"verdict": "true|false|partly_true|unverified", "confidence": 0.0-1.0, "summary": "one or two sentences"}`,
		language, req.Text)
}

// modelAnswer is the JSON shape providers ask the model to emit
type modelAnswer struct {
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

// ParseAnswer extracts the verdict JSON from a model response. Models
// wrap answers in code fences or prose often enough that the parser
// scans for the first JSON object instead of trusting the whole body.
func ParseAnswer(raw string, req model.VerificationRequest) (*model.VerificationResult, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var answer modelAnswer
	if err := json.Unmarshal([]byte(raw[start:end+1]), &answer); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}

	verdict := parseVerdict(answer.Verdict)
	confidence := answer.Confidence
	if confidence < 0 || confidence > 1 {
		confidence = 0.5
	}
	// A model that cannot decide must not sound confident
	if verdict == model.VerdictUnverified && confidence > 0.5 {
		confidence = 0.5
	}

	return &model.VerificationResult{
		ID:            model.NewID("verif"),
		Verdict:       verdict,
		Confidence:    confidence,
		Summary:       strings.TrimSpace(answer.Summary),
		EvidenceChain: []model.Evidence{},
		OriginalClaim: req.Text,
		Language:      req.Language,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

func parseVerdict(s string) model.Verdict {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return model.VerdictTrue
	case "false":
		return model.VerdictFalse
	case "partly_true", "partly-true", "misleading":
		return model.VerdictPartlyTrue
	default:
		return model.VerdictUnverified
	}
}
