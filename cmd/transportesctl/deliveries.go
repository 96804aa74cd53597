package main

import (
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	deliveriesStatus    string
	deliveriesDriverID  string
	deliveriesStartDate string
	deliveriesEndDate   string
)

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "List deliveries visible to the authenticated actor",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if deliveriesStatus != "" {
			q.Set("status", deliveriesStatus)
		}
		if deliveriesDriverID != "" {
			q.Set("driverId", deliveriesDriverID)
		}
		if deliveriesStartDate != "" {
			q.Set("startDate", deliveriesStartDate)
		}
		if deliveriesEndDate != "" {
			q.Set("endDate", deliveriesEndDate)
		}

		path := "/api/v1/deliveries"
		if len(q) > 0 {
			path += "?" + q.Encode()
		}

		var out struct {
			Deliveries []struct {
				ID                   int64  `json:"id"`
				DriverID             *int64 `json:"driverId"`
				Status               string `json:"status"`
				NFNumber             string `json:"nfNumber"`
				DeliveryDateExpected string `json:"deliveryDateExpected"`
				CreatedAt            string `json:"createdAt"`
			} `json:"deliveries"`
		}
		if err := newClient().getJSON(path, &out); err != nil {
			return err
		}

		if outputFmt == "json" {
			return printJSON(out)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDRIVER\tSTATUS\tNF\tEXPECTED\tCREATED")
		for _, d := range out.Deliveries {
			driver := "-"
			if d.DriverID != nil {
				driver = fmt.Sprintf("%d", *d.DriverID)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				d.ID, driver, d.Status, d.NFNumber, d.DeliveryDateExpected, d.CreatedAt)
		}
		return w.Flush()
	},
}

func init() {
	deliveriesCmd.Flags().StringVar(&deliveriesStatus, "status", "", "Filter by status")
	deliveriesCmd.Flags().StringVar(&deliveriesDriverID, "driver", "", "Filter by driver id")
	deliveriesCmd.Flags().StringVar(&deliveriesStartDate, "start", "", "Start date (YYYY-MM-DD)")
	deliveriesCmd.Flags().StringVar(&deliveriesEndDate, "end", "", "End date (YYYY-MM-DD)")
}
