package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/finwallet/internal/infrastructure/config"
	"github.com/iho/finwallet/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finwallet-cli",
		Short: "FinWallet CLI tool",
		Long:  `A command line interface for interacting with the FinWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinWallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newTransferCmd())
	rootCmd.AddCommand(newBudgetCmd())
	rootCmd.AddCommand(newRateCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newMergeCmd() *cobra.Command {
	var keep string

	mergeCmd := &cobra.Command{
		Use:   "merge",
		Short: "Wallet merge operations",
	}

	previewCmd := &cobra.Command{
		Use:   "preview <source-wallet-id> <target-wallet-id>",
		Short: "Preview merging one wallet into another",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/merges/preview", map[string]any{
				"source_wallet_id": args[0],
				"target_wallet_id": args[1],
				"keep":             keep,
			})
		},
	}
	previewCmd.Flags().StringVar(&keep, "keep", "TARGET", "Currency to keep (SOURCE or TARGET)")

	mergeCmd.AddCommand(previewCmd)

	return mergeCmd
}

func newTransferCmd() *cobra.Command {
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Wallet transfer operations",
	}

	previewCmd := &cobra.Command{
		Use:   "preview <source-wallet-id> <target-wallet-id> <amount>",
		Short: "Preview a cross-wallet transfer",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers/preview", map[string]any{
				"source_wallet_id": args[0],
				"target_wallet_id": args[1],
				"amount":           args[2],
			})
		},
	}

	transferCmd.AddCommand(previewCmd)

	return transferCmd
}

func newBudgetCmd() *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Budget operations",
	}

	checkCmd := &cobra.Command{
		Use:   "check <budget-id> <amount>",
		Short: "Check a pending spend against a budget",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON(fmt.Sprintf("/api/v1/budgets/%s/check", args[0]), map[string]any{
				"amount": args[1],
			})
		},
	}

	budgetCmd.AddCommand(checkCmd)

	return budgetCmd
}

func newRateCmd() *cobra.Command {
	rateCmd := &cobra.Command{
		Use:   "rate",
		Short: "Exchange rate operations",
	}

	getCmd := &cobra.Command{
		Use:   "get <from> <to>",
		Short: "Resolve the conversion rate between two currencies",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{"from": {args[0]}, "to": {args[1]}}
			getJSON("/api/v1/rates?" + query.Encode())
		},
	}

	rateCmd.AddCommand(getCmd)

	return rateCmd
}

func newMigrateCmd() *cobra.Command {
	var migrationsPath string

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			return postgres.RunMigrations(cfg.DatabaseURL, migrationsPath)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			return postgres.RunMigrationsDown(cfg.DatabaseURL, migrationsPath)
		},
	}

	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)

	return migrateCmd
}

func postJSON(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
