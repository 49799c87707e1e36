package events

import (
	"context"
	"strconv"

	"fitbooker/pkg/config"
	"fitbooker/pkg/kafka"
	kafka_config "fitbooker/pkg/kafka/config"
	kafkamw "fitbooker/pkg/kafka/middleware"
	"fitbooker/pkg/logger"
	"fitbooker/pkg/model"
)

// TypeBookingConfirmed is the event type emitted for every successful
// booking.
const TypeBookingConfirmed = "booking.confirmed"

const (
	schemaVersion = "1"
	eventSource   = "fitbooker"
)

// Publisher emits booking lifecycle events. Publishing is best-effort:
// the coordinator never fails a booking over a publish error.
type Publisher interface {
	BookingConfirmed(ctx context.Context, record *model.BookingRecord) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

// NewKafkaPublisher builds a Kafka-backed publisher for the configured
// bookings topic. Events are keyed by class id so consumers observe
// bookings for one class in order.
func NewKafkaPublisher(cfg *config.Config) (Publisher, error) {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaTopic)
	if err != nil {
		return nil, err
	}
	producer.Use(kafkamw.PublishLogging(cfg.Log))

	return &kafkaPublisher{
		producer: producer,
		log:      cfg.Log,
	}, nil
}

func (p *kafkaPublisher) BookingConfirmed(ctx context.Context, record *model.BookingRecord) error {
	msg := kafka.NewMessage().
		WithKey(strconv.FormatInt(record.ClassID, 10)).
		WithValue(record).
		WithEventType(TypeBookingConfirmed).
		WithSchemaVersion(schemaVersion).
		WithSource(eventSource).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}
