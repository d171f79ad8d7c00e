package module

import (
	"time"

	"lookalike/internal/platform/config"
	"lookalike/internal/platform/events"
	"lookalike/internal/services/dedupe/service"
)

// Options holds configuration settings for the dedupe module
type Options struct {
	Service service.Config

	// MergeRefs lists table:column pairs repointed on merge
	MergeRefs []string

	// LeaseTTL bounds how long a crashed analysis keeps others out
	LeaseTTL time.Duration
	// LockTimeout caps row lock waits inside dedupe transactions
	LockTimeout time.Duration

	Kafka events.Config
}

// FromConfig reads DEDUPE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	dc := cfg.Prefix("DEDUPE_")
	return Options{
		Service: service.Config{
			RecentLimit:  dc.MayInt("RECENT_LIMIT", 200),
			FuzzyLimit:   dc.MayInt("FUZZY_LIMIT", 50),
			Threshold:    dc.MayFloat64("THRESHOLD", 0.7),
			BatchSize:    dc.MayInt("BATCH_SIZE", 50),
			Debounce:     dc.MayDuration("DEBOUNCE", 500*time.Millisecond),
			SessionTTL:   dc.MayDuration("SESSION_TTL", 10*time.Minute),
			MergeRetries: dc.MayInt("MERGE_RETRIES", 3),
		},
		MergeRefs:   dc.MayCSV("MERGE_REFS", nil),
		LeaseTTL:    dc.MayDuration("LEASE_TTL", 15*time.Minute),
		LockTimeout: dc.MayDuration("LOCK_TIMEOUT", 5*time.Second),
		Kafka: events.Config{
			Brokers:      dc.MayCSV("KAFKA_BROKERS", nil),
			Topic:        dc.MayString("KAFKA_TOPIC", "customers.merged"),
			BatchTimeout: dc.MayDuration("KAFKA_BATCH_TIMEOUT", 50*time.Millisecond),
			RequiredAcks: dc.MayInt("KAFKA_ACKS", -1),
			Compression:  dc.MayEnum("KAFKA_COMPRESSION", "snappy", "none", "gzip", "snappy", "lz4", "zstd"),
		},
	}
}
