package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// cacheCmd groups cache maintenance subcommands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the verification cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache hit/miss statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		stats := a.cache.Stats()
		fmt.Printf("Hits:     %d\n", stats.Hits)
		fmt.Printf("Misses:   %d\n", stats.Misses)
		fmt.Printf("Hit rate: %.0f%%\n", stats.HitRate*100)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached verification results",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.cache.Clear()
		fmt.Println("Cache cleared.")
		return nil
	},
}

var cacheCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove expired entries from the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		removed := a.cache.Cleanup()
		fmt.Printf("Removed %d expired entries.\n", removed)
		return nil
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent verification outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		records, err := a.history.Recent(historyLimit)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No verification history yet.")
			return nil
		}

		for _, record := range records {
			fmt.Printf("%s  [%s %.2f]  %s\n",
				record.CreatedAt.Format(time.RFC3339),
				record.Verdict, record.Confidence, record.Claim)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheCleanupCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of records to show")
	rootCmd.AddCommand(historyCmd)
}
