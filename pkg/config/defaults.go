package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Seed schedule horizon and studio timezone.
	DefaultSeedDaysAhead = 7
	DefaultSeedTimezone  = "Asia/Kolkata"

	DefaultKafkaEnabled  = false
	DefaultKafkaTopic    = "fitbooker.bookings"
	DefaultPublishWindow = 5 * time.Second
)
