package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	authToken string
	outputFmt string
)

var rootCmd = &cobra.Command{
	Use:   "transportesctl",
	Short: "CLI for the deliveries backend",
	Long: `transportesctl is an operations CLI for the deliveries server.

It talks to the HTTP API with the same bearer tokens the mobile and web
clients use; point it at a server with --server and supply a token with
--token or the TRANSPORTES_TOKEN environment variable.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Deliveries server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Bearer token (default: from TRANSPORTES_TOKEN env)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table or json")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(deliveriesCmd)
	rootCmd.AddCommand(alertsCmd)
}

// resolvedToken returns the effective bearer token.
// Priority: --token flag > TRANSPORTES_TOKEN env var.
func resolvedToken() string {
	if authToken != "" {
		return authToken
	}
	return os.Getenv("TRANSPORTES_TOKEN")
}
