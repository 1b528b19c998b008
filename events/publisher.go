package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/kambleakash0/substack-monitor/types"
)

// SummaryDispatched is the event emitted after a summary was delivered.
type SummaryDispatched struct {
	PostID       string    `json:"post_id"`
	PostURL      string    `json:"post_url"`
	Title        string    `json:"title,omitempty"`
	DispatchedAt time.Time `json:"dispatched_at"`
}

// KafkaPublisher emits summary-dispatched events to a Kafka topic.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// PublisherConfig holds Kafka producer configuration
type PublisherConfig struct {
	Brokers []string
	Topic   string
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(config PublisherConfig) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Kafka publisher started (topic: %s)", config.Topic)
	return &KafkaPublisher{producer: producer, topic: config.Topic}, nil
}

// Publish sends one event keyed by post identifier.
func (p *KafkaPublisher) Publish(ctx context.Context, summary *types.Summary) error {
	event := SummaryDispatched{
		PostID:       summary.PostID,
		PostURL:      summary.PostURL,
		Title:        summary.Title,
		DispatchedAt: summary.CreatedAt,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(summary.PostID),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return err
	}

	log.Printf("📤 Published summary event: partition=%d, offset=%d, key=%s",
		partition, offset, summary.PostID)
	return nil
}

// Close gracefully shuts down the producer.
func (p *KafkaPublisher) Close() error {
	log.Println("Closing Kafka publisher...")
	return p.producer.Close()
}
