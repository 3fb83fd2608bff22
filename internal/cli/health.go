package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the verification service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(context.Background(), a.config.API.HealthTimeout)
		defer cancel()

		status, err := a.client.Health(ctx)
		if err != nil {
			return fmt.Errorf("service unreachable at %s: %w", a.config.API.BaseURL, err)
		}

		fmt.Printf("Status:  %s\n", status.Status)
		if status.Version != "" {
			fmt.Printf("Version: %s\n", status.Version)
		}
		for name, state := range status.Services {
			fmt.Printf("  %-12s %s\n", name, state)
		}
		if !status.Healthy() {
			return fmt.Errorf("service reports unhealthy status")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
