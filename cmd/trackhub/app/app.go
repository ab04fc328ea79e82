// Package app builds the trackhub command.
package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/trackhub-io/trackhub/cmd/trackhub/app/options"
	"github.com/trackhub-io/trackhub/pkg/app"
	"github.com/trackhub-io/trackhub/pkg/log"
)

const (
	commandName = "trackhub"
	commandDesc = `The trackhub server ingests vehicle telemetry over HTTP and MQTT,
maintains the latest known state and history of every vehicle, streams
updates to websocket subscribers and dispatches commands back to vehicles.`
)

// NewApp creates the trackhub application.
func NewApp() *app.App {
	opts := options.NewTrackerOptions()
	return app.NewApp(
		commandName,
		"Launch the vehicle tracking hub",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithRunFunc(run(opts)),
		app.WithReloadFunc(func() { log.Init(opts.Log) }),
	)
}

func run(opts *options.TrackerOptions) app.RunFunc {
	return func() error {
		log.Init(opts.Log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		srv, err := cfg.NewTrackerServer()
		if err != nil {
			return fmt.Errorf("failed to create tracker server: %w", err)
		}

		return srv.Run(ctx)
	}
}
