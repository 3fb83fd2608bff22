// Package pipeline turns a URL into a verified page report: fetch,
// segment, detect claims, then resolve each claim through the
// coordinator.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chaguan/chaguan/internal/extract"
	"github.com/chaguan/chaguan/internal/model"
)

// Resolver verifies one claim, mutating its status and result.
// Satisfied by coordinate.Coordinator.
type Resolver interface {
	Resolve(ctx context.Context, claim *model.Claim) (*model.VerificationResult, error)
}

// Analyzer scans pages for verifiable claims and resolves them
type Analyzer struct {
	fetcher   *Fetcher
	extractor *extract.TextExtractor
	detector  extract.Detector
	resolver  Resolver
	workers   int
	log       *zap.Logger
}

// NewAnalyzer creates an analyzer resolving claims through resolver with
// at most workers concurrent verifications per page.
func NewAnalyzer(fetcher *Fetcher, detector extract.Detector, resolver Resolver, workers int, log *zap.Logger) *Analyzer {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		fetcher:   fetcher,
		extractor: extract.NewTextExtractor(),
		detector:  detector,
		resolver:  resolver,
		workers:   workers,
		log:       log,
	}
}

// ScanURL fetches a page and analyzes it
func (a *Analyzer) ScanURL(ctx context.Context, rawURL string) (*model.PageReport, error) {
	fetched, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return a.AnalyzeHTML(ctx, fetched.HTML, fetched.FinalURL, fetched.FetchedAt)
}

// AnalyzeHTML detects claims in already-fetched HTML and resolves them.
// Claims repeated across segments of the same page are processed once.
func (a *Analyzer) AnalyzeHTML(ctx context.Context, htmlContent, pageURL string, fetchedAt time.Time) (*model.PageReport, error) {
	segments, err := a.extractor.ExtractHTML(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	registry := extract.NewDedupRegistry()
	var claims []*model.Claim
	for _, segment := range segments {
		detected := a.detector.Detect(segment.Text)
		for _, claim := range detected {
			claim.Position.Start += segment.Start
			claim.Position.End += segment.Start
		}
		claims = append(claims, registry.Filter(detected)...)
	}

	a.log.Debug("page analyzed",
		zap.String("url", pageURL),
		zap.Int("segments", len(segments)),
		zap.Int("claims", len(claims)))

	a.resolveAll(ctx, claims)

	return &model.PageReport{
		URL:       pageURL,
		FetchedAt: fetchedAt,
		Segments:  len(segments),
		Claims:    claims,
	}, nil
}

// resolveAll verifies claims with bounded concurrency. Individual
// failures mark the claim failed and do not abort the page.
func (a *Analyzer) resolveAll(ctx context.Context, claims []*model.Claim) {
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup

	for _, claim := range claims {
		wg.Add(1)
		go func(claim *model.Claim) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if _, err := a.resolver.Resolve(ctx, claim); err != nil {
				a.log.Warn("claim resolution failed",
					zap.String("claim_id", claim.ID), zap.Error(err))
			}
		}(claim)
	}
	wg.Wait()
}
