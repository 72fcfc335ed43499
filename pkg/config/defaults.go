package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "spacebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultBookingsAPIURL     = "http://localhost:5000/api"
	DefaultBookingsAPITimeout = 10 * time.Second

	DefaultCompetingFetchConcurrency = 4
	DefaultCompetingFetchTimeout     = 5 * time.Second
	DefaultItemsPerPage              = 10
	MaxItemsPerPage                  = 100

	DefaultCurrency = "UZS"
	DefaultLanguage = "en"

	DefaultKafkaEnabled = false

	DefaultPreferencesChangesWait = 10 * time.Second

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

var (
	SupportedCurrencies = []string{"UZS", "USD", "EUR", "RUB"}
	SupportedLanguages  = []string{"en", "ru", "uz"}
)
