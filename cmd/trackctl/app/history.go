package app

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

func newHistoryCommand() *cobra.Command {
	var (
		from  string
		to    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history <vehicle-id>",
		Short: "Show a vehicle's telemetry history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			if from != "" {
				params.Set("from", from)
			}
			if to != "" {
				params.Set("to", to)
			}
			if limit > 0 {
				params.Set("limit", fmt.Sprint(limit))
			}

			path := "/api/v1/vehicles/" + args[0] + "/history"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var samples []model.TelemetrySample
			if err := getJSON(path, &samples); err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("TIMESTAMP", "LAT", "LON", "SPEED", "HEADING", "STATUS")
			for _, s := range samples {
				table.AddRow(s.Timestamp.Format(time.RFC3339),
					fmt.Sprintf("%.5f", s.Lat), fmt.Sprintf("%.5f", s.Lon),
					fmt.Sprintf("%.1f", s.Speed), fmt.Sprintf("%.1f", s.Heading),
					s.Status)
			}
			fmt.Println(table)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start, RFC 3339 (inclusive).")
	cmd.Flags().StringVar(&to, "to", "", "Range end, RFC 3339 (inclusive).")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of samples (server default 100).")

	return cmd
}
