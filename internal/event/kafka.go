package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/segmentio/kafka-go"
)

const headerEventType = "event_type"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher writes order events to one topic keyed by order id,
// so events of the same order land on the same partition in order.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaWriter returns a writer for topic that hashes message keys to partitions.
func NewKafkaWriter(brokers []string, topic string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("brokers are empty")
	}
	if topic == "" {
		return nil, errors.New("topic is empty")
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}, nil
}

func NewKafkaPublisher(writer messageWriter) (*KafkaPublisher, error) {
	if writer == nil {
		return nil, errors.New("writer is nil")
	}

	return &KafkaPublisher{writer: writer}, nil
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}

	if err := p.publish(ctx, order.ID(), TypeOrderPlaced, NewOrderPlaced(order)); err != nil {
		return fmt.Errorf("p.publish: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	if order == nil {
		return errors.New("order is nil")
	}

	if err := p.publish(ctx, order.ID(), TypeOrderStatusChanged, NewOrderStatusChanged(order, previous)); err != nil {
		return fmt.Errorf("p.publish: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) publish(ctx context.Context, orderID uuid.UUID, eventType string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(orderID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writer.WriteMessages[%s]: %w", eventType, err)
	}

	return nil
}
