package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chaguan/chaguan/internal/model"
	"github.com/chaguan/chaguan/internal/util"
	"github.com/chaguan/chaguan/internal/worker"
)

// Client calls the remote verification service. Every call carries a
// bounded timeout; on expiry the request is aborted, never left
// outstanding.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
	limiter    *worker.Limiter
	log        *zap.Logger
}

// NewClient creates a verification service client
func NewClient(cfg model.APIConfig, httpCfg model.HTTPConfig, limiter *worker.Limiter, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: httpCfg.UserAgent,
		timeout:   cfg.Timeout,
		limiter:   limiter,
		log:       log,
	}
}

// wire shapes, snake_case per the service contract

type wireEvidence struct {
	ID               string  `json:"id"`
	Source           string  `json:"source"`
	SourceURL        string  `json:"source_url"`
	Title            string  `json:"title"`
	Snippet          string  `json:"snippet"`
	PublishedAt      string  `json:"published_at,omitempty"`
	CredibilityScore float64 `json:"credibility_score"`
	Language         string  `json:"language"`
}

type wireOriginalSource struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Excerpt  string `json:"excerpt"`
}

type wireVerifyResponse struct {
	ID                     string              `json:"id"`
	Verdict                string              `json:"verdict"`
	Confidence             float64             `json:"confidence"`
	Summary                string              `json:"summary"`
	EvidenceChain          []wireEvidence      `json:"evidence_chain"`
	OriginalClaim          string              `json:"original_claim"`
	Language               string              `json:"language"`
	MistranslationDetected bool                `json:"mistranslation_detected"`
	MistranslationDetails  string              `json:"mistranslation_details,omitempty"`
	OriginalSource         *wireOriginalSource `json:"original_source,omitempty"`
	CreatedAt              string              `json:"created_at"`
}

// Verify submits a claim for remote verification
func (c *Client) Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationResult, error) {
	endpoint := c.baseURL + "/verify"

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, endpoint); err != nil {
			return nil, &TransportError{Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	c.log.Debug("verify request", zap.String("url", endpoint), zap.String("language", req.Language))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Message: readErrorDetail(resp.Body)}
	}

	var wire wireVerifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&wire); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	return convertResponse(&wire), nil
}

// convertResponse maps the wire shape to the internal model. The producer
// never sets Cached; only the cache read path does.
func convertResponse(wire *wireVerifyResponse) *model.VerificationResult {
	evidence := make([]model.Evidence, 0, len(wire.EvidenceChain))
	for _, e := range wire.EvidenceChain {
		evidence = append(evidence, model.Evidence{
			ID:               e.ID,
			Source:           e.Source,
			SourceURL:        e.SourceURL,
			Title:            e.Title,
			Snippet:          e.Snippet,
			PublishedAt:      e.PublishedAt,
			CredibilityScore: e.CredibilityScore,
			Language:         e.Language,
		})
	}

	createdAt, err := time.Parse(time.RFC3339, wire.CreatedAt)
	if err != nil {
		createdAt = time.Now().UTC()
	}

	result := &model.VerificationResult{
		ID:                     wire.ID,
		Verdict:                parseVerdict(wire.Verdict),
		Confidence:             wire.Confidence,
		Summary:                wire.Summary,
		EvidenceChain:          evidence,
		OriginalClaim:          wire.OriginalClaim,
		Language:               wire.Language,
		MistranslationDetected: wire.MistranslationDetected,
		MistranslationDetails:  wire.MistranslationDetails,
		CreatedAt:              createdAt,
	}
	if wire.OriginalSource != nil {
		result.OriginalSource = &model.OriginalSource{
			URL:      wire.OriginalSource.URL,
			Title:    wire.OriginalSource.Title,
			Language: wire.OriginalSource.Language,
			Excerpt:  wire.OriginalSource.Excerpt,
		}
	}
	return result
}

// parseVerdict maps service verdict strings onto the canonical set,
// folding the divergent spellings of older backends.
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

// classifyTransportError sorts a client error into the taxonomy
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Err: err}
	}
	return &TransportError{Err: err}
}

// readErrorDetail extracts the "detail" field from an error body, if any
func readErrorDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Detail == "" {
		return strings.TrimSpace(string(data))
	}
	return payload.Detail
}
