package utils

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/oguzkaan/campus-events-backend/config"
)

var activityWriter *kafka.Writer

// InitializeKafka sets up the writer for the event-activity topic.
func InitializeKafka(cfg *config.Config) {
	activityWriter = &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaActivityTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	log.Printf("Kafka writer ready (brokers=%v topic=%s)", cfg.KafkaBrokers, cfg.KafkaActivityTopic)
}

// PublishActivity writes one message to the activity topic. Errors are logged,
// not surfaced: activity fan-out must never fail a user request.
func PublishActivity(ctx context.Context, key string, payload []byte) {
	if activityWriter == nil {
		return
	}
	err := activityWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		log.Printf("kafka publish failed: %v", err)
	}
}

// NewActivityReader creates a consumer-group reader for the activity topic.
func NewActivityReader(cfg *config.Config, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  groupID,
		Topic:    cfg.KafkaActivityTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// CloseKafka flushes and closes the writer on shutdown.
func CloseKafka() {
	if activityWriter != nil {
		_ = activityWriter.Close()
	}
}
