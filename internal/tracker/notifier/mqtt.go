// Package notifier pushes dispatched commands toward vehicles over MQTT.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
	pkgmqtt "github.com/trackhub-io/trackhub/pkg/mqtt"
	"github.com/trackhub-io/trackhub/pkg/mqtt/topic"
	"github.com/trackhub-io/trackhub/pkg/options"
)

// commandQoS is at-least-once: a vehicle briefly offline with a live session
// still receives the command on reconnect.
const commandQoS = 1

// MQTTNotifier publishes commands on the per-vehicle command topic.
// It runs on a dedicated egress client so a flood of inbound telemetry never
// delays command delivery.
type MQTTNotifier struct {
	client pkgmqtt.Client
	topics *topic.Builder
}

var _ core.CommandNotifier = (*MQTTNotifier)(nil)

// NewMQTTNotifier creates and starts the egress client.
func NewMQTTNotifier(opts *options.MQTTOptions) (*MQTTNotifier, error) {
	cfg := opts.ToClientConfig()
	cfg.ClientID = cfg.ClientID + "-notifier"

	client, err := pkgmqtt.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating egress client: %w", err)
	}
	if err := client.Start(context.Background()); err != nil {
		return nil, fmt.Errorf("starting egress client: %w", err)
	}

	return &MQTTNotifier{
		client: client,
		topics: topic.NewBuilder(opts.TopicRoot),
	}, nil
}

// Notify implements core.CommandNotifier. Delivery stops at the broker; there
// is no confirmation from the vehicle on this path.
func (n *MQTTNotifier) Notify(ctx context.Context, cmd *model.Command) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encoding command %s: %w", cmd.ID, err)
	}
	return n.client.Publish(ctx, n.topics.Command(cmd.VehicleID), commandQoS, false, payload)
}

// Close shuts the egress client down.
func (n *MQTTNotifier) Close(ctx context.Context) error {
	n.client.Disconnect(ctx)
	return nil
}
