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
		Use:   "tallybot-cli",
		Short: "Tallybot CLI tool",
		Long:  `A command line interface for interacting with the Tallybot API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Tallybot API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the current ledger report",
		Run: func(cmd *cobra.Command, args []string) {
			printReport()
		},
	}

	rateCmd := &cobra.Command{
		Use:   "rate [value]",
		Short: "Show or set the exchange rate",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				showRate()
				return
			}
			setRate(args[0])
		},
	}

	undoCmd := &cobra.Command{
		Use:   "undo",
		Short: "Delete the most recent entry",
		Run: func(cmd *cobra.Command, args []string) {
			undoLast()
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print the full ledger as CSV",
		Run: func(cmd *cobra.Command, args []string) {
			exportCSV()
		},
	}

	rootCmd.AddCommand(reportCmd, rateCmd, undoCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func printReport() {
	body := get("/api/v1/report?fresh=true")

	var result struct {
		Report string `json:"report"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.Report)
}

func showRate() {
	body := get("/api/v1/rate")

	var result struct {
		Rate json.Number `json:"rate"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rate: %s\n", result.Rate)
}

func setRate(value string) {
	payload := []byte(fmt.Sprintf(`{"rate":%q}`, value))

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodPut, baseURL+"/api/v1/rate", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Failed to set rate (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Printf("Rate updated to %s\n", value)
}

func undoLast() {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodDelete, baseURL+"/api/v1/entries/last", nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		fmt.Println("No entries to delete.")
		return
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Failed to undo (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result struct {
		DeletedID int64 `json:"deleted_id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Last entry (id=%d) deleted.\n", result.DeletedID)
}

func exportCSV() {
	fmt.Print(string(get("/api/v1/entries/export")))
}

func get(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}
