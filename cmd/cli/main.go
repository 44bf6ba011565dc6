package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Clinic ledger CLI tool",
		Long:  `A command line interface for inspecting the clinic ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(reportCmd(), summaryCmd(), reconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Clinic-wide reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clinic",
		Short: "Clinic overview: revenue, expenses, net profit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndPrint("/api/v1/reports/clinic")
		},
	})

	var months int
	cashflow := &cobra.Command{
		Use:   "cashflow",
		Short: "Monthly cash inflow and outflow",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndPrint(fmt.Sprintf("/api/v1/reports/cashflow?months=%d", months))
		},
	}
	cashflow.Flags().IntVar(&months, "months", 6, "Number of months to include")
	cmd.AddCommand(cashflow)

	return cmd
}

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Per-party financial summaries",
	}

	for _, party := range []string{"patient", "doctor", "supplier"} {
		party := party
		cmd.AddCommand(&cobra.Command{
			Use:   party + " <id>",
			Short: "Summary for a " + party,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return fetchAndPrint(fmt.Sprintf("/api/v1/%ss/%s/summary", party, args[0]))
			},
		})
	}

	return cmd
}

func reconcileCmd() *cobra.Command {
	var accountID string
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Replay transaction history against stored balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			if accountID != "" {
				return fetchAndPrint("/api/v1/accounts/" + accountID + "/reconcile")
			}
			return fetchAndPrint("/api/v1/reports/reconciliation")
		},
	}
	cmd.Flags().StringVar(&accountID, "account", "", "Reconcile a single account instead of all")

	return cmd
}

// fetchAndPrint GETs a ledger API path and pretty-prints the JSON response.
func fetchAndPrint(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(joinURL(baseURL, path))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	printJSON(parsed)

	return nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to format output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
