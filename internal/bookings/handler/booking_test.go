package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "consultpay/pkg/errors"
	"consultpay/pkg/logger"
	"consultpay/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockBookingService struct {
	createFunc       func(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResult, error)
	getByOrderIDFunc func(ctx context.Context, orderID string) (*model.Booking, error)
	healthFunc       func(ctx context.Context) error
	requestedOrderID string
}

func (m *mockBookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResult, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.CreateBookingResult{}, nil
}

func (m *mockBookingService) GetByOrderID(ctx context.Context, orderID string) (*model.Booking, error) {
	m.requestedOrderID = orderID
	if m.getByOrderIDFunc != nil {
		return m.getByOrderIDFunc(ctx, orderID)
	}
	return &model.Booking{OrderID: orderID, Status: model.BookingStatusPending}, nil
}

func (m *mockBookingService) Health(ctx context.Context) error {
	if m.healthFunc != nil {
		return m.healthFunc(ctx)
	}
	return nil
}

func newTestRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)
	NewHealthHandler(svc, "test", logger.Discard()).RegisterRoutes(router)
	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, w.Body.String())
	}
	return body
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		createErr   error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "success",
			body:        `{"patientName":"Asha","email":"a@example.com","mobileNumber":"9876543210","bookingDateTime":"2026-11-02T10:30","reason":"Fever"}`,
			wantStatus:  http.StatusCreated,
			wantMessage: "Booking created successfully",
		},
		{
			name:        "malformed json",
			body:        `{"patientName":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid JSON body",
		},
		{
			name:        "empty body",
			body:        ``,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Request body is required",
		},
		{
			name:        "validation failure",
			body:        `{"patientName":"Asha"}`,
			createErr:   apperrors.Validation("All fields are required", nil),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "All fields are required",
		},
		{
			name:        "provider failure",
			body:        `{"patientName":"Asha"}`,
			createErr:   apperrors.Upstream("Failed to create booking", errors.New("gateway timeout")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to create booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFunc: func(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResult, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &model.CreateBookingResult{
						OrderID:          "ORDER_1_abcdefghi",
						PaymentSessionID: "session_1",
					}, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if body["message"] != tt.wantMessage {
				t.Errorf("message = %v, want %q", body["message"], tt.wantMessage)
			}
			if tt.wantStatus == http.StatusCreated {
				if body["success"] != true || body["orderId"] != "ORDER_1_abcdefghi" || body["paymentSessionId"] != "session_1" {
					t.Errorf("unexpected body %v", body)
				}
			} else if body["success"] != false {
				t.Errorf("expected success=false, got %v", body["success"])
			}
		})
	}
}

func TestStatus_OrderIDSources(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"path parameter", "/api/status/ORDER_42"},
		{"query parameter", "/api/status?orderId=ORDER_42"},
		{"order-status alias", "/api/status/order-status?orderId=ORDER_42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{}
			w := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if svc.requestedOrderID != "ORDER_42" {
				t.Errorf("service received order id %q", svc.requestedOrderID)
			}
			body := decodeBody(t, w)
			booking, ok := body["booking"].(map[string]any)
			if body["success"] != true || !ok || booking["orderId"] != "ORDER_42" {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}

func TestStatus_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{"missing query id", "/api/status", apperrors.InvalidInput("Order ID is required"), http.StatusBadRequest},
		{"unknown order", "/api/status/ORDER_UNKNOWN", apperrors.NotFoundWithID("Booking not found", "ORDER_UNKNOWN"), http.StatusNotFound},
		{"store failure", "/api/status/ORDER_1", apperrors.Internal("Failed to get booking status", errors.New("timeout")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				getByOrderIDFunc: func(ctx context.Context, orderID string) (*model.Booking, error) {
					return nil, tt.err
				},
			}
			w := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if body := decodeBody(t, w); body["success"] != false {
				t.Errorf("expected success=false, got %v", body)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		pingErr    error
		wantStatus int
		wantState  string
	}{
		{"healthy", "/api/health", nil, http.StatusOK, "healthy"},
		{"healthy short path", "/health", nil, http.StatusOK, "healthy"},
		{"store down", "/api/health", errors.New("no reachable servers"), http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				healthFunc: func(ctx context.Context) error {
					if _, ok := ctx.Deadline(); !ok {
						t.Error("expected health check to run with a deadline")
					}
					return tt.pingErr
				},
			}
			w := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			body := decodeBody(t, w)
			if body["status"] != tt.wantState {
				t.Errorf("status = %v, want %s", body["status"], tt.wantState)
			}
			if tt.pingErr != nil && body["message"] != "Database connection failed" {
				t.Errorf("message = %v", body["message"])
			}
			if body["environment"] != "test" {
				t.Errorf("environment = %v", body["environment"])
			}
			if _, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string)); err != nil {
				t.Errorf("timestamp is not RFC3339: %v", body["timestamp"])
			}
		})
	}
}
