package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "walletd-cli",
		Short: "walletd CLI tool",
		Long:  `A command line interface for interacting with the walletd API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the walletd API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Wallet commands
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	createCmd := &cobra.Command{
		Use:   "create [owner-name]",
		Short: "Create a new wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/wallets", map[string]any{"owner_name": args[0]}, "")
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [wallet-id]",
		Short: "Get a wallet with its recent entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/wallets/"+args[0], nil, "")
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List wallets",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/wallets", nil, "")
		},
	}

	var fundKey string
	fundCmd := &cobra.Command{
		Use:   "fund [wallet-id] [amount]",
		Short: "Fund a wallet",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/wallets/"+args[0]+"/fund", map[string]any{"amount": args[1]}, fundKey)
		},
	}
	fundCmd.Flags().StringVar(&fundKey, "idempotency-key", "", "Idempotency key for the deposit")

	walletCmd.AddCommand(createCmd, getCmd, listCmd, fundCmd)
	rootCmd.AddCommand(walletCmd)

	// Transfer command
	var transferKey string
	transferCmd := &cobra.Command{
		Use:   "transfer [from-wallet-id] [to-wallet-id] [amount]",
		Short: "Transfer funds between wallets",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/transfers", map[string]any{
				"from_wallet_id": args[0],
				"to_wallet_id":   args[1],
				"amount":         args[2],
			}, transferKey)
		},
	}
	transferCmd.Flags().StringVar(&transferKey, "idempotency-key", "", "Idempotency key for the transfer")
	rootCmd.AddCommand(transferCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func doRequest(method, path string, payload map[string]any, idempotencyKey string) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		fmt.Println(string(respBody))
		return
	}
	fmt.Println(pretty.String())
}
