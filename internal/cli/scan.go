package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chaguan/chaguan/internal/extract"
	"github.com/chaguan/chaguan/internal/model"
	"github.com/chaguan/chaguan/internal/pipeline"
	"github.com/chaguan/chaguan/internal/worker"
)

var (
	scanFile    string
	scanJSON    string
	scanTimeout time.Duration
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [url...]",
	Short: "Scan web pages for checkable claims and verify them",
	Long: `Scan fetches one or more pages, detects verifiable claims in their
text, and resolves each claim through the cache and the verification
service.

Examples:
  chaguan scan https://example.com/news/article
  chaguan scan --file urls.txt --json reports.json`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanFile, "file", "f", "", "file with URLs, one per line")
	scanCmd.Flags().StringVar(&scanJSON, "json", "", "write page reports to this JSON file")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Minute, "overall scan timeout")
}

func runScan(cmd *cobra.Command, args []string) error {
	urls := args
	if scanFile != "" {
		fromFile, err := worker.ReadURLsFromFile(scanFile)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given: pass them as arguments or with --file")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	a.coordinator.StartCleanup(ctx, a.config.Cache.CleanupInterval)

	detector := extract.NewPatternDetectorWithRules(
		extract.DefaultRules(),
		a.config.Detector.MinLength,
		a.config.Detector.MaxLength,
	)
	analyzer := pipeline.NewAnalyzer(
		pipeline.NewFetcher(a.config.HTTP),
		detector,
		a.coordinator,
		a.config.Concurrency.VerifyWorkers,
		a.log,
	)
	pool := worker.NewPool(analyzer, a.config.Concurrency.ScanWorkers)

	outcomes := pool.Process(ctx, urls)

	var reports []*model.PageReport
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.URL, outcome.Err)
			continue
		}
		reports = append(reports, outcome.Report)
		printReport(outcome.Report)
	}

	if scanJSON != "" {
		if err := writeReportsJSON(scanJSON, reports); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %d reports to %s\n", len(reports), scanJSON)
		}
	}

	stats := a.cache.Stats()
	fmt.Printf("\nCache: %d hits, %d misses (%.0f%% hit rate)\n",
		stats.Hits, stats.Misses, stats.HitRate*100)

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(urls))
	}
	return nil
}

func printReport(report *model.PageReport) {
	fmt.Printf("%s\n", report.URL)
	fmt.Printf("  segments: %d, claims: %d (verified %d, failed %d, offline %d)\n",
		report.Segments, len(report.Claims),
		report.CountByStatus(model.StatusVerified),
		report.CountByStatus(model.StatusFailed),
		report.CountOffline())

	for _, claim := range report.Claims {
		verdict := "-"
		if claim.Result != nil {
			verdict = string(claim.Result.Verdict)
		}
		fmt.Printf("  [%s] %s\n", verdict, claim.Text)
		if claim.Result != nil && claim.Result.Summary != "" {
			fmt.Printf("        %s\n", claim.Result.Summary)
		}
	}
}

func writeReportsJSON(path string, reports []*model.PageReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	return nil
}
