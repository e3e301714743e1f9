package repository

import (
	"context"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
	pkgkafka "github.com/williamppmm/rvc-investment-analyzer/pkg/kafka"
)

// KafkaPublisher pushes finalized documents to a Kafka topic, keyed by
// ticker so all runs for one ticker land in the same partition, in order.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates the publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, doc *models.Document) error {
	return p.producer.Publish(ctx, p.topic, []byte(doc.Ticker), doc)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
