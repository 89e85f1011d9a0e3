package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderCreatedEvent is published after an order is persisted. Publication is
// best-effort; a failed publish never fails the originating request.
type OrderCreatedEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderPublisher is implemented by Producer and mocked in tests
type OrderPublisher interface {
	SendOrderCreated(ctx context.Context, event OrderCreatedEvent) error
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer}
}

func (p *Producer) SendOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() {
	_ = p.writer.Close()
}
