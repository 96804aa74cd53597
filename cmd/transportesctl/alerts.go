package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var alertsLimit int

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List recent operational alerts for the company",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("/api/v1/alerts?limit=%d", alertsLimit)

		var out struct {
			Alerts []struct {
				Severity    string `json:"severity"`
				Title       string `json:"title"`
				Description string `json:"description"`
				DeliveryID  string `json:"deliveryId"`
				OccurredAt  string `json:"occurredAt"`
			} `json:"alerts"`
			Degraded bool `json:"degraded"`
		}
		if err := newClient().getJSON(path, &out); err != nil {
			return err
		}

		if outputFmt == "json" {
			return printJSON(out)
		}

		if out.Degraded {
			fmt.Fprintln(os.Stderr, "warning: serving from degraded cache, storage unreachable")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SEVERITY\tTITLE\tDELIVERY\tOCCURRED\tDESCRIPTION")
		for _, a := range out.Alerts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				a.Severity, a.Title, a.DeliveryID, a.OccurredAt, a.Description)
		}
		return w.Flush()
	},
}

func init() {
	alertsCmd.Flags().IntVar(&alertsLimit, "limit", 20, "Maximum alerts to return")
}
