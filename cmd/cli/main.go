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
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// bcryptGenerate is swapped out in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "corebank-cli",
		Short: "CoreBank CLI tool",
		Long:  `A command line interface for interacting with the CoreBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the CoreBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated requests")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(atmCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(ledgerCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var userID, accountType string
	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/accounts", map[string]any{
				"user_id": userID,
				"type":    accountType,
			})
		},
	}
	openCmd.Flags().StringVar(&userID, "user", "", "Owning user ID")
	openCmd.Flags().StringVar(&accountType, "type", "CURRENT", "Account type (CURRENT or SAVINGS)")
	_ = openCmd.MarkFlagRequired("user")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch an account by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/accounts", nil)
		},
	}

	deactivateCmd := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodDelete, "/api/v1/accounts/"+args[0], nil)
		},
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions <id>",
		Short: "List transactions touching an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/accounts/"+args[0]+"/transactions", nil)
		},
	}

	cmd.AddCommand(openCmd, getCmd, listCmd, deactivateCmd, transactionsCmd)
	return cmd
}

func transferCmd() *cobra.Command {
	var from, to, amount, description string
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer money between accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"from_iban": from,
				"to_iban":   to,
				"amount":    amount,
			}
			if description != "" {
				body["description"] = description
			}
			return request(http.MethodPost, "/api/v1/transactions", body)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source IBAN")
	cmd.Flags().StringVar(&to, "to", "", "Destination IBAN")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func atmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "atm",
		Short: "ATM operations",
	}

	var iban, amount string
	depositCmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit cash into an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/atm/deposit", map[string]any{
				"iban":   iban,
				"amount": amount,
			})
		},
	}
	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw cash from an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/atm/withdraw", map[string]any{
				"iban":   iban,
				"amount": amount,
			})
		},
	}
	for _, c := range []*cobra.Command{depositCmd, withdrawCmd} {
		c.Flags().StringVar(&iban, "iban", "", "Account IBAN")
		c.Flags().StringVar(&amount, "amount", "", "Amount")
		_ = c.MarkFlagRequired("iban")
		_ = c.MarkFlagRequired("amount")
	}

	cmd.AddCommand(depositCmd, withdrawCmd)
	return cmd
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User operations",
	}

	var email, name, password string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/users", map[string]any{
				"email":    email,
				"name":     name,
				"password": password,
			})
		},
	}
	createCmd.Flags().StringVar(&email, "email", "", "Email address")
	createCmd.Flags().StringVar(&name, "name", "", "Display name")
	createCmd.Flags().StringVar(&password, "password", "", "Password")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/users/login", map[string]any{
				"email":    loginEmail,
				"password": loginPassword,
			})
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	cmd.AddCommand(createCmd, loginCmd)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/ledger/consistency", nil)
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Hash a password for seeding users directly in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func request(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\n", resp.StatusCode)
	}
	printBody(data)

	if resp.StatusCode >= http.StatusBadRequest {
		os.Exit(1)
	}
	return nil
}

func printBody(data []byte) {
	if len(data) == 0 {
		return
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		fmt.Println(truncate(string(data), 2000))
		return
	}
	printJSON(parsed)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
