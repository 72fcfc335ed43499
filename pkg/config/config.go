package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"slices"
	"spacebook/pkg/client"
	"spacebook/pkg/logger"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	BookingsAPIURL     string
	BookingsAPITimeout time.Duration

	CompetingFetchConcurrency int
	CompetingFetchTimeout     time.Duration
	ItemsPerPage              int

	DefaultCurrency string
	DefaultLanguage string

	KafkaEnabled bool

	// PreferencesChangesWait bounds the preferences long-poll. It must end
	// before the request and write timeouts cut the response off.
	PreferencesChangesWait time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		BookingsAPIURL:     strings.TrimRight(getEnvStr(EnvBookingsAPIURL, DefaultBookingsAPIURL), "/"),
		BookingsAPITimeout: getEnvDuration(EnvBookingsAPITimeout, DefaultBookingsAPITimeout),

		CompetingFetchConcurrency: getEnvNum(EnvCompetingFetchConcurrency, DefaultCompetingFetchConcurrency),
		CompetingFetchTimeout:     getEnvDuration(EnvCompetingFetchTimeout, DefaultCompetingFetchTimeout),
		ItemsPerPage:              getEnvNum(EnvItemsPerPage, DefaultItemsPerPage),

		DefaultCurrency: strings.ToUpper(getEnvStr(EnvDefaultCurrency, DefaultCurrency)),
		DefaultLanguage: strings.ToLower(getEnvStr(EnvDefaultLanguage, DefaultLanguage)),

		KafkaEnabled: getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),

		PreferencesChangesWait: getEnvDuration(EnvPreferencesChangesWait, DefaultPreferencesChangesWait),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if u, err := url.Parse(cfg.BookingsAPIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, fmt.Sprintf("BookingsAPIURL must be an absolute http(s) URL, got: %s", cfg.BookingsAPIURL))
	}

	if cfg.CompetingFetchConcurrency < 1 {
		errors = append(errors, fmt.Sprintf("CompetingFetchConcurrency must be at least 1, got: %d", cfg.CompetingFetchConcurrency))
	}
	if cfg.ItemsPerPage < 1 || cfg.ItemsPerPage > MaxItemsPerPage {
		errors = append(errors, fmt.Sprintf("ItemsPerPage must be between 1 and %d, got: %d", MaxItemsPerPage, cfg.ItemsPerPage))
	}

	if !slices.Contains(SupportedCurrencies, cfg.DefaultCurrency) {
		errors = append(errors, fmt.Sprintf("DefaultCurrency must be one of %v, got: %s", SupportedCurrencies, cfg.DefaultCurrency))
	}
	if !slices.Contains(SupportedLanguages, cfg.DefaultLanguage) {
		errors = append(errors, fmt.Sprintf("DefaultLanguage must be one of %v, got: %s", SupportedLanguages, cfg.DefaultLanguage))
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"BookingsAPITimeout", cfg.BookingsAPITimeout},
		{"CompetingFetchTimeout", cfg.CompetingFetchTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"PreferencesChangesWait", cfg.PreferencesChangesWait},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.PreferencesChangesWait >= cfg.RequestTimeout || cfg.PreferencesChangesWait >= cfg.WriteTimeout {
		errors = append(errors, fmt.Sprintf("PreferencesChangesWait must be shorter than RequestTimeout and WriteTimeout, got: %s", cfg.PreferencesChangesWait))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"bookings_api_url", cfg.BookingsAPIURL,
		"bookings_api_timeout", cfg.BookingsAPITimeout,
		"competing_fetch_concurrency", cfg.CompetingFetchConcurrency,
		"competing_fetch_timeout", cfg.CompetingFetchTimeout,
		"items_per_page", cfg.ItemsPerPage,
		"default_currency", cfg.DefaultCurrency,
		"default_language", cfg.DefaultLanguage,
		"kafka_enabled", cfg.KafkaEnabled,
		"preferences_changes_wait", cfg.PreferencesChangesWait,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

// NormalizeItemsPerPage clamps a requested page size into [1, MaxItemsPerPage].
func (cfg *Config) NormalizeItemsPerPage(n int) int {
	if n <= 0 {
		return cfg.ItemsPerPage
	}
	return min(n, MaxItemsPerPage)
}
