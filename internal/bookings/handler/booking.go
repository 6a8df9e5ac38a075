package handler

import (
	"net/http"

	"consultpay/internal/bookings/service"
	httputil "consultpay/pkg/http"
	"consultpay/pkg/logger"
	"consultpay/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// orderStatusAlias keeps the /api/status/order-status?orderId= form routable next to /api/status/:orderId.
const orderStatusAlias = "order-status"

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

type CreateBookingResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	OrderID          string `json:"orderId"`
	PaymentSessionID string `json:"paymentSessionId"`
	PaymentURL       string `json:"paymentUrl,omitempty"`
}

type BookingStatusResponse struct {
	Success bool           `json:"success"`
	Booking *model.Booking `json:"booking"`
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateBookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, CreateBookingResponse{
		Success:          true,
		Message:          "Booking created successfully",
		OrderID:          result.OrderID,
		PaymentSessionID: result.PaymentSessionID,
		PaymentURL:       result.PaymentURL,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Status(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderId")
	if orderID == "" || orderID == orderStatusAlias {
		orderID = r.URL.Query().Get("orderId")
	}

	booking, err := h.service.GetByOrderID(r.Context(), orderID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Status", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteOK(w, BookingStatusResponse{
		Success: true,
		Booking: booking,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Status", "operation", "WriteOK", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/booking", h.Create)
	router.GET("/api/status", h.Status)
	router.GET("/api/status/:orderId", h.Status)
}
