package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		var out struct {
			Status string `json:"status"`
		}
		if err := c.getJSON("/readyz", &out); err != nil {
			return err
		}
		fmt.Printf("server %s: %s\n", serverURL, out.Status)
		return nil
	},
}
