package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultTopicStatusChanged      = "booking.status_changed"
	DefaultTopicCleanupCompleted   = "booking.cleanup_completed"
	DefaultTopicPreferencesChanged = "preferences.changed"
	DefaultDLQTopic                = "spacebook.dlq"
	DefaultConsumerGroup           = "spacebook-dashboard"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // all replicas
	DefaultProducerCompression  = "snappy"

	DefaultConsumerStartOffset    = -1 // newest
	DefaultConsumerMaxWait        = 500 * time.Millisecond
	DefaultConsumerCommitInterval = 1 * time.Second
	DefaultConsumerMaxRetries     = 3
	DefaultConsumerRetryBackoff   = 200 * time.Millisecond
)
