package redis

import (
	"context"
	"encoding/json"

	"github.com/Vinamra-Agarwal/CareChain/internal/node"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/x/chflow"

	redis "github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "carechain"

	// monitorChannel receives a copy of every published event.
	monitorChannel = channelPrefix + ":events"

	subscriptionBufferSize = 64
)

// layerChannel returns the channel a layer listens on.
func layerChannel(layer node.Layer) string {
	return channelPrefix + ":" + string(layer)
}

// Publish sends event to its target layer channel and to the monitor
// channel in a single round trip.
func (c *client) Publish(ctx context.Context, event node.Event) error {
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = c.conn.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Publish(ctx, layerChannel(event.TargetLayer), message)
		p.Publish(ctx, monitorChannel, message)
		return nil
	})
	return err
}

// Subscribe listens on the channel of layer. It returns once Redis has
// confirmed the subscription. Messages that are not valid events are
// logged and skipped.
func (c *client) Subscribe(ctx context.Context, layer node.Layer) (<-chan node.Event, error) {
	channel := layerChannel(layer)

	pubsub := c.conn.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	eventsCh := make(chan node.Event, subscriptionBufferSize)
	go func() {
		defer close(eventsCh)
		defer pubsub.Close()

		messagesCh := pubsub.Channel()
		for {
			msg, ok := chflow.Receive(ctx, messagesCh)
			if !ok {
				return
			}

			var event node.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn(ctx, "skipping malformed event",
					"bus.channel", msg.Channel,
					"error", err,
				)
				continue
			}

			if !chflow.Send(ctx, eventsCh, event) {
				return
			}
		}
	}()

	logger.Info(ctx, "subscribed to layer channel", "bus.channel", channel)

	return eventsCh, nil
}

// Ensure the client satisfies the node ports at compile time.
var (
	_ node.Publisher  = (*client)(nil)
	_ node.Subscriber = (*client)(nil)
)
