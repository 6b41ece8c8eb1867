// Package events publishes transaction state changes to the event stream.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dzmarket/payment-engine/internal/models"
)

// Topic carries one message per state transition, keyed by transaction id.
const Topic = "payment.state.changed"

type stateChangeEvent struct {
	TransactionID string                   `json:"transaction_id"`
	State         models.TransactionStatus `json:"state"`
	PreviousState models.TransactionStatus `json:"previous_state"`
	Timestamp     time.Time                `json:"timestamp"`
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers),
			Topic:    Topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) PublishStateChange(ctx context.Context, txID string, from, to models.TransactionStatus) error {
	event := stateChangeEvent{
		TransactionID: txID,
		State:         to,
		PreviousState: from,
		Timestamp:     time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(txID),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
