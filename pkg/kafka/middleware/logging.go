package middleware

import (
	"context"
	"time"

	"fitbooker/pkg/kafka"
	"fitbooker/pkg/logger"
)

// PublishLogging logs every publish attempt with its outcome and latency.
func PublishLogging(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		eventType, _ := msg.GetHeader(kafka.HeaderEventType)
		eventID, _ := msg.GetHeader(kafka.HeaderEventID)

		if err != nil {
			log.Error("Kafka publish failed",
				"event_id", eventID,
				"event_type", eventType,
				"key", msg.Key,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return err
		}

		log.Debug("Kafka publish succeeded",
			"event_id", eventID,
			"event_type", eventType,
			"key", msg.Key,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}
