// Package tracker assembles the vehicle tracking hub: stores, core service,
// outbound adapters and protocol frontends.
package tracker

import (
	"context"
	"fmt"
	"os"

	"github.com/trackhub-io/trackhub/internal/pkg/metrics"
	"github.com/trackhub-io/trackhub/internal/tracker/broadcast"
	"github.com/trackhub-io/trackhub/internal/tracker/core/service"
	"github.com/trackhub-io/trackhub/internal/tracker/memstore"
	"github.com/trackhub-io/trackhub/internal/tracker/notifier"
	"github.com/trackhub-io/trackhub/internal/tracker/server"
	httpserver "github.com/trackhub-io/trackhub/internal/tracker/server/http"
	mqttserver "github.com/trackhub-io/trackhub/internal/tracker/server/mqtt"
	"github.com/trackhub-io/trackhub/internal/tracker/storage"
	"github.com/trackhub-io/trackhub/pkg/log"
	pkgmqtt "github.com/trackhub-io/trackhub/pkg/mqtt"
	"github.com/trackhub-io/trackhub/pkg/mqtt/topic"
	"github.com/trackhub-io/trackhub/pkg/options"
)

// Config aggregates the resolved options of the trackhub binary.
type Config struct {
	HTTPOptions *options.HTTPOptions
	MQTTOptions *options.MQTTOptions
	S3Options   *options.S3Options
}

// NewTrackerServer wires the full object graph. Everything is constructed
// once here and passed by reference; there is no ambient global state.
func (cfg *Config) NewTrackerServer() (*TrackerServer, error) {
	hub := broadcast.NewHub(
		broadcast.WithDropHook(func() { metrics.BroadcastDroppedTotal.Inc() }),
	)

	svcOpts := []service.Option{}

	egress, err := notifier.NewMQTTNotifier(cfg.MQTTOptions)
	if err != nil {
		return nil, fmt.Errorf("initializing command notifier: %w", err)
	}
	svcOpts = append(svcOpts, service.WithNotifier(egress))

	if cfg.S3Options.Enabled {
		archive, err := storage.NewMinIOArchive(context.Background(), cfg.S3Options)
		if err != nil {
			return nil, fmt.Errorf("initializing archive store: %w", err)
		}
		svcOpts = append(svcOpts, service.WithArchive(archive))
		log.Info("History archiving enabled", "bucket", cfg.S3Options.BucketName)
	}

	svc := service.New(
		memstore.NewStateStore(),
		memstore.NewHistoryStore(),
		memstore.NewCommandStore(),
		hub,
		svcOpts...,
	)

	ingressClient, err := newIngressClient(cfg.MQTTOptions)
	if err != nil {
		return nil, fmt.Errorf("initializing mqtt ingress client: %w", err)
	}
	topics := topic.NewBuilder(cfg.MQTTOptions.TopicRoot)

	manager := server.NewManager(
		mqttserver.NewServer(ingressClient, topics, svc),
		httpserver.NewServer(cfg.HTTPOptions, svc, hub),
	)

	return &TrackerServer{
		manager: manager,
		egress:  egress,
	}, nil
}

func newIngressClient(opts *options.MQTTOptions) (pkgmqtt.Client, error) {
	cfg := opts.ToClientConfig()
	if cfg.ClientID == "" {
		hostname, _ := os.Hostname()
		cfg.ClientID = fmt.Sprintf("trackhub-%s", hostname)
	}
	return pkgmqtt.NewClient(cfg)
}
