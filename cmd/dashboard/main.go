package main

import (
	"context"
	"spacebook/internal/bookings/enrich"
	"spacebook/internal/bookings/handler"
	"spacebook/internal/bookings/repository"
	"spacebook/internal/bookings/service"
	"spacebook/internal/bookings/validator"
	prefsevents "spacebook/internal/preferences/events"
	prefshandler "spacebook/internal/preferences/handler"
	prefsrepository "spacebook/internal/preferences/repository"
	prefsservice "spacebook/internal/preferences/service"
	"spacebook/pkg/app"
	"spacebook/pkg/client"
	"spacebook/pkg/config"
	"spacebook/pkg/kafka"
	kafka_config "spacebook/pkg/kafka/config"
	kafka_middleware "spacebook/pkg/kafka/middleware"
	"spacebook/pkg/model"

	"github.com/google/uuid"
)

const ServiceName = "dashboard"

type eventPublisher interface {
	Publish(ctx context.Context, topic, key, eventType string, payload any) error
	Close() error
}

type kafkaStack struct {
	cfg       *kafka_config.Config
	publisher eventPublisher
	metrics   handler.KafkaMetrics
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.Log.Info("Starting Dashboard service")

	instanceID := ServiceName + "-" + uuid.NewString()
	serverApp := app.NewApplication(cfg)
	dashboardValidator := validator.NewDashboardValidator(cfg.Log)

	events := initKafka(cfg, instanceID, serverApp)
	prefsStore := initPreferences(cfg, dashboardValidator, events, instanceID)
	initPreferencesSync(cfg, events, prefsStore, instanceID, serverApp)
	dashboardService := initDashboard(cfg, dashboardValidator, prefsStore, events)

	serverApp.SetApp(
		handler.NewHealthHandler(cfg.Client.Mongo, events.metrics, cfg.Log),
		handler.NewDashboardHandler(dashboardService, cfg.Log),
		prefshandler.NewPreferencesHandler(prefsStore, dashboardValidator, cfg.PreferencesChangesWait, cfg.Log),
	)
	serverApp.Run()
}

func initKafka(cfg *config.Config, instanceID string, serverApp *app.Application) kafkaStack {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, events will be dropped")
		return kafkaStack{
			cfg: &kafka_config.Config{
				TopicStatusChanged:      kafka_config.DefaultTopicStatusChanged,
				TopicCleanupCompleted:   kafka_config.DefaultTopicCleanupCompleted,
				TopicPreferencesChanged: kafka_config.DefaultTopicPreferencesChanged,
			},
			publisher: kafka.NewNopPublisher(cfg.Log),
		}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	metrics := &kafka_middleware.Metrics{}
	publisher, err := kafka.NewEventPublisher(kafkaCfg, instanceID, cfg.Log,
		kafka_middleware.LoggingProducerMiddleware(cfg.Log),
		metrics.ProducerMiddleware(),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka publisher", "error", err)
	}
	serverApp.OnShutdown("kafka-publisher", publisher.Close)

	return kafkaStack{
		cfg:       kafkaCfg,
		publisher: publisher,
		metrics:   metrics,
	}
}

func initPreferences(cfg *config.Config, v *validator.DashboardValidator, events kafkaStack, instanceID string) prefsservice.Store {
	store := prefsservice.NewStore(
		prefsrepository.NewMongoPreferencesRepository(cfg),
		events.publisher,
		v,
		prefsservice.Options{
			Defaults: model.Preferences{Currency: cfg.DefaultCurrency, Language: cfg.DefaultLanguage},
			Topic:    events.cfg.TopicPreferencesChanged,
			Source:   instanceID,
		},
		cfg.Log,
	)
	cfg.Log.Info("Preferences store initialized", "source", instanceID)
	return store
}

// initPreferencesSync subscribes this instance to preference changes made
// elsewhere. Every instance needs every change, so each one joins its own
// consumer group.
func initPreferencesSync(cfg *config.Config, events kafkaStack, store prefsservice.Store, instanceID string, serverApp *app.Application) {
	if !cfg.KafkaEnabled {
		return
	}

	consumerCfg := *events.cfg
	consumerCfg.ConsumerGroup = events.cfg.ConsumerGroup + "-" + instanceID

	consumer, err := kafka.NewConsumer(&consumerCfg, events.cfg.TopicPreferencesChanged, prefsevents.NewChangeHandler(store, cfg.Log), cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create preferences consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	if metrics, ok := events.metrics.(*kafka_middleware.Metrics); ok {
		consumer.Use(metrics.ConsumerMiddleware())
	}
	serverApp.AddWorker(consumer)
}

func initDashboard(cfg *config.Config, v *validator.DashboardValidator, prefs prefsservice.Store, events kafkaStack) service.DashboardService {
	bookingsAPI := client.NewBookingAPIClient(cfg.BookingsAPIURL, cfg.BookingsAPITimeout)
	enricher := enrich.New(bookingsAPI, cfg.CompetingFetchConcurrency, cfg.CompetingFetchTimeout, cfg.Log)

	dashboardService := service.NewDashboardService(
		bookingsAPI,
		enricher,
		repository.NewMongoViewStateRepository(cfg),
		prefs,
		events.publisher,
		v,
		service.Topics{
			StatusChanged:    events.cfg.TopicStatusChanged,
			CleanupCompleted: events.cfg.TopicCleanupCompleted,
		},
		cfg,
	)

	cfg.Log.Info("Dashboard service initialized",
		"bookings_api", cfg.BookingsAPIURL,
		"database", cfg.MongoDatabaseName,
	)
	return dashboardService
}
