// Package mqtt is the broker-facing ingress: vehicle telemetry comes in on
// the shared telemetry subscription, command status reports on the ack
// subscription.
package mqtt

import (
	"context"
	"fmt"
	"time"

	"github.com/trackhub-io/trackhub/internal/tracker/core/service"
	"github.com/trackhub-io/trackhub/pkg/log"
	pkgmqtt "github.com/trackhub-io/trackhub/pkg/mqtt"
	"github.com/trackhub-io/trackhub/pkg/mqtt/topic"
)

// ingestGroup is the shared-subscription group name; replicas of the hub
// split the telemetry stream between them.
const ingestGroup = "trackhub"

const ingestQoS = 1

const disconnectTimeout = 5 * time.Second

// Server owns the ingress MQTT client and its subscriptions.
type Server struct {
	client pkgmqtt.Client
	topics *topic.Builder
	h      *handler
}

// NewServer builds the ingress server around an existing client.
func NewServer(client pkgmqtt.Client, topics *topic.Builder, svc *service.Service) *Server {
	return &Server{
		client: client,
		topics: topics,
		h:      &handler{svc: svc},
	}
}

// Start connects, subscribes and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		s.client.Disconnect(shutdownCtx)
		log.Info("MQTT ingress disconnected")
	}()

	log.Info("Waiting for MQTT connection")
	if err := s.client.AwaitConnection(ctx); err != nil {
		return err
	}
	log.Info("MQTT connected")

	subscriptions := map[string]pkgmqtt.MessageHandler{
		s.topics.Shared(ingestGroup, s.topics.TelemetryWildcard()):  s.h.handleTelemetry,
		s.topics.Shared(ingestGroup, s.topics.CommandAckWildcard()): s.h.handleCommandAck,
	}
	for filter, handler := range subscriptions {
		if err := s.client.Subscribe(ctx, filter, ingestQoS, handler); err != nil {
			return fmt.Errorf("subscribing to %s: %w", filter, err)
		}
		log.Info("Subscribed", "filter", filter)
	}

	<-ctx.Done()
	return nil
}
