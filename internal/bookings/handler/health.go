package handler

import (
	"context"
	"net/http"
	"time"

	"consultpay/internal/bookings/service"
	httputil "consultpay/pkg/http"
	"consultpay/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const healthCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment,omitempty"`
	Error       string    `json:"error,omitempty"`
}

type HealthHandler struct {
	service     service.BookingService
	environment string
	log         *logger.Logger
	now         func() time.Time
}

func NewHealthHandler(service service.BookingService, environment string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		service:     service,
		environment: environment,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.service.Health(ctx); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusInternalServerError, HealthResponse{
			Status:      "error",
			Message:     "Database connection failed",
			Timestamp:   h.now(),
			Environment: h.environment,
			Error:       err.Error(),
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Message:     "Consultation booking API is running",
		Timestamp:   h.now(),
		Environment: h.environment,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Health)
	router.GET("/api/health", h.Health)
}
