package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/chaguan/chaguan/internal/model"
)

// Scanner scans one page and reports the claims found and verified there
type Scanner interface {
	ScanURL(ctx context.Context, url string) (*model.PageReport, error)
}

// ScanOutcome is the result of scanning one URL
type ScanOutcome struct {
	URL    string
	Report *model.PageReport
	Err    error
}

// Pool scans pages concurrently with a bounded number of workers
type Pool struct {
	scanner Scanner
	workers int
}

// NewPool creates a scan pool
func NewPool(scanner Scanner, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{scanner: scanner, workers: workers}
}

// Process scans all URLs and returns outcomes in input order
func (p *Pool) Process(ctx context.Context, urls []string) []ScanOutcome {
	outcomes := make([]ScanOutcome, len(urls))
	semaphore := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				outcomes[idx] = ScanOutcome{URL: url, Err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			report, err := p.scanner.ScanURL(ctx, url)
			outcomes[idx] = ScanOutcome{URL: url, Report: report, Err: err}
		}(i, u)
	}

	wg.Wait()
	return outcomes
}

// ReadURLsFromFile reads URLs from a file, one per line, skipping blanks,
// comments, and duplicates.
func ReadURLsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
