package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads booking events for a consumer group. Payload decoding
// happens here so handlers only ever see BookingEvent values.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks, invoking handler for each decoded event until the context
// is canceled or the handler fails.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, BookingEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, ok := decodeEvent(msg.Value)
		if !ok {
			continue
		}
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

// decodeEvent parses a raw message payload. Malformed payloads are dropped
// rather than wedging the consumer group on a poison message.
func decodeEvent(value []byte) (BookingEvent, bool) {
	var event BookingEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return BookingEvent{}, false
	}
	return event, true
}
