package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chaguan/chaguan/internal/extract"
	"github.com/chaguan/chaguan/internal/model"
)

var (
	verifyLang    string
	verifyJSON    bool
	verifyTimeout time.Duration
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <text>",
	Short: "Verify a single claim",
	Long: `Verify checks one piece of text against the verification service,
going through the cache first.

Examples:
  chaguan verify "据报道，该市去年新增了三条地铁线路。"
  chaguan verify --lang en "The city opened three new subway lines last year."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyLang, "lang", "", "claim language (detected when empty)")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "print the full result as JSON")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", time.Minute, "verification timeout")
}

func runVerify(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("claim text is empty")
	}

	language := verifyLang
	if language == "" {
		language = extract.DetectLanguage(text)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	claim := model.NewManualClaim(text, language)
	result, err := a.coordinator.Resolve(ctx, claim)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	if verifyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(result)
	return nil
}

func printResult(result *model.VerificationResult) {
	fmt.Printf("Verdict:    %s\n", result.Verdict)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	if result.Summary != "" {
		fmt.Printf("Summary:    %s\n", result.Summary)
	}
	if result.Cached {
		fmt.Println("Source:     cache")
	} else if result.Offline {
		fmt.Println("Source:     offline fallback (service unreachable)")
	}
	if result.MistranslationDetected {
		fmt.Println("Note:       possible mistranslation")
		if result.MistranslationDetails != "" {
			fmt.Printf("            %s\n", result.MistranslationDetails)
		}
	}
	for i, evidence := range result.EvidenceChain {
		if i == 0 {
			fmt.Println("Evidence:")
		}
		fmt.Printf("  - %s (%s)\n    %s\n", evidence.Title, evidence.Source, evidence.SourceURL)
	}
}
