package handler

import (
	"net/http"

	"consultpay/internal/payments/service"
	httputil "consultpay/pkg/http"
	"consultpay/pkg/logger"
	"consultpay/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
	// webhookMiddleware wraps the webhook route only, e.g. signature verification.
	webhookMiddleware []func(http.Handler) http.Handler
}

type VerifyPaymentResponse struct {
	Success        bool                 `json:"success"`
	OrderStatus    string               `json:"orderStatus"`
	BookingStatus  string               `json:"bookingStatus"`
	PaymentDetails model.PaymentDetails `json:"paymentDetails"`
	Booking        *model.Booking       `json:"booking"`
}

type WebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger, webhookMiddleware ...func(http.Handler) http.Handler) *PaymentHandler {
	return &PaymentHandler{
		service:           service,
		log:               log,
		webhookMiddleware: webhookMiddleware,
	}
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.VerifyPaymentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Verify", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.Verify(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Verify", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, VerifyPaymentResponse{
		Success:        true,
		OrderStatus:    result.OrderStatus,
		BookingStatus:  result.Booking.Status,
		PaymentDetails: result.PaymentDetails,
		Booking:        result.Booking,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Verify", "operation", "WriteOK", "error", err)
	}
}

func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var notification model.PaymentWebhook
	if err := httputil.DecodeJSON(r, &notification); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Webhook", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.HandleWebhook(r.Context(), &notification); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Webhook", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, WebhookResponse{
		Success: true,
		Message: "Webhook processed successfully",
		OrderID: notification.OrderID,
		Status:  notification.OrderStatus,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Webhook", "operation", "WriteOK", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/payment/verify", h.Verify)

	var webhook http.Handler = http.HandlerFunc(h.Webhook)
	for i := len(h.webhookMiddleware) - 1; i >= 0; i-- {
		webhook = h.webhookMiddleware[i](webhook)
	}
	router.Handler(http.MethodPost, "/api/payment/webhook", webhook)
}
