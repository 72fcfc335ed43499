package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	httputil "spacebook/pkg/http"
	kafka_middleware "spacebook/pkg/kafka/middleware"
	"spacebook/pkg/logger"
)

type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type KafkaMetrics interface {
	Snapshot() kafka_middleware.MetricsSnapshot
}

type HealthResponse struct {
	Status   string                            `json:"status"`
	Database string                            `json:"database,omitempty"`
	Kafka    *kafka_middleware.MetricsSnapshot `json:"kafka,omitempty"`
}

type HealthHandler struct {
	mongo   Pinger
	metrics KafkaMetrics
	log     *logger.Logger
}

// NewHealthHandler builds the liveness and readiness endpoints. metrics may
// be nil when Kafka is disabled.
func NewHealthHandler(mongo Pinger, metrics KafkaMetrics, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		mongo:   mongo,
		metrics: metrics,
		log:     log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	var kafka *kafka_middleware.MetricsSnapshot
	if h.metrics != nil {
		snapshot := h.metrics.Snapshot()
		kafka = &snapshot
	}

	if err := h.mongo.Ping(ctx, nil); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Database: "error",
			Kafka:    kafka,
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Database: "ok",
		Kafka:    kafka,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
