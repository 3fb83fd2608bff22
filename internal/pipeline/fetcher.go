package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chaguan/chaguan/internal/model"
	"github.com/chaguan/chaguan/internal/util"
)

// maxRedirects caps redirect chains when fetching a page
const maxRedirects = 3

// Fetcher retrieves HTML pages, honoring robots.txt and a body size cap
type Fetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	userAgent  string
	maxBytes   int64
}

// NewFetcher creates a Fetcher from HTTP configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// FetchResult carries the fetched page body and where it finally came from
type FetchResult struct {
	HTML      string
	FinalURL  string
	FetchedAt time.Time
}

// Fetch retrieves the HTML at rawURL. Pages disallowed by robots.txt
// return an error without a request being made.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		HTML:      string(body),
		FinalURL:  resp.Request.URL.String(),
		FetchedAt: time.Now().UTC(),
	}, nil
}
