package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvBookingsAPIURL     = "BOOKINGS_API_URL"
	EnvBookingsAPITimeout = "BOOKINGS_API_TIMEOUT"

	EnvCompetingFetchConcurrency = "COMPETING_FETCH_CONCURRENCY"
	EnvCompetingFetchTimeout     = "COMPETING_FETCH_TIMEOUT"
	EnvItemsPerPage              = "ITEMS_PER_PAGE"

	EnvDefaultCurrency = "DEFAULT_CURRENCY"
	EnvDefaultLanguage = "DEFAULT_LANGUAGE"

	EnvKafkaEnabled = "KAFKA_ENABLED"

	EnvPreferencesChangesWait = "PREFERENCES_CHANGES_WAIT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
