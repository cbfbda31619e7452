package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/segmentio/kafka-go"
)

const orderPlacedEvent = "order.placed"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emits one message per order, keyed by order id.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.CRC32Balancer{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (k *KafkaPublisher) PublishOrders(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(orders))
	for _, o := range orders {
		event := NewOrderEvent(o)
		value, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal order %d: %w", o.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   event.Key(),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(orderPlacedEvent)},
			},
		})
	}
	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d order events: %w", len(msgs), err)
	}
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
