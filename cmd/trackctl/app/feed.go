package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trackhub-io/trackhub/internal/gpsfeed"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

func newFeedCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "feed <vehicle-id> [file]",
		Short: "Stream raw NMEA sentences into the server as telemetry",
		Long: `Reads newline-separated NMEA sentences ($GPRMC / $GPGGA) from a file or
stdin, decodes them and submits the resulting telemetry for the given
vehicle. Undecodable lines are skipped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := os.Stdin
			if len(args) == 2 {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reader := gpsfeed.NewReader(args[0], httpAccepter{}, gpsfeed.WithInterval(interval))
			return reader.Run(ctx, src)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second,
		"Minimum time between submitted reports; 0 submits every fix.")

	return cmd
}

// httpAccepter submits decoded telemetry through the server's REST API.
type httpAccepter struct{}

func (httpAccepter) Ingest(_ context.Context, update *model.TelemetryUpdate) error {
	if err := postJSON("/api/v1/telemetry", update, nil); err != nil {
		return fmt.Errorf("submitting telemetry: %w", err)
	}
	return nil
}
