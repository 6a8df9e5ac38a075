package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	bookingserrors "consultpay/internal/bookings/errors"
	"consultpay/internal/payments/reconciler"
	"consultpay/internal/payments/validator"
	"consultpay/pkg/cashfree"
	apperrors "consultpay/pkg/errors"
	"consultpay/pkg/logger"
	"consultpay/pkg/model"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type memoryStore struct {
	bookings map[string]model.Booking
	lookups  int
	updates  int
	findErr  error
}

func newMemoryStore(bookings ...model.Booking) *memoryStore {
	s := &memoryStore{bookings: map[string]model.Booking{}}
	for _, b := range bookings {
		s.bookings[b.OrderID] = b
	}
	return s
}

func (s *memoryStore) FindByOrderID(ctx context.Context, orderID string) (*model.Booking, error) {
	s.lookups++
	if s.findErr != nil {
		return nil, s.findErr
	}
	b, ok := s.bookings[orderID]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return &b, nil
}

func (s *memoryStore) UpdateStatusByOrderID(ctx context.Context, orderID string, update model.BookingStatusUpdate) (*model.Booking, error) {
	b, ok := s.bookings[orderID]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	s.updates++
	b.Status = update.Status
	b.UpdatedAt = update.UpdatedAt
	if update.PaymentID != nil {
		b.PaymentID = *update.PaymentID
	}
	if update.PaymentMethod != nil {
		b.PaymentMethod = *update.PaymentMethod
	}
	if update.PaymentTime != nil {
		b.PaymentTime = *update.PaymentTime
	}
	if update.BankReference != nil {
		b.BankReference = *update.BankReference
	}
	if update.PaymentMessage != nil {
		b.PaymentMessage = *update.PaymentMessage
	}
	s.bookings[orderID] = b
	return &b, nil
}

type mockGateway struct {
	configured bool
	fetched    []string
	order      *cashfree.Order
	err        error
}

func (m *mockGateway) Configured() bool {
	return m.configured
}

func (m *mockGateway) FetchOrder(ctx context.Context, orderID string) (*cashfree.Order, error) {
	m.fetched = append(m.fetched, orderID)
	return m.order, m.err
}

type nopPublisher struct{}

func (nopPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {}

func (nopPublisher) BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus, providerStatus string) {
}

func pendingBooking(orderID string) model.Booking {
	return model.Booking{
		OrderID:   orderID,
		Amount:    500,
		Currency:  "INR",
		Status:    model.BookingStatusPending,
		CreatedAt: time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
	}
}

func newTestService(store *memoryStore, gateway *mockGateway) PaymentService {
	log := logger.Discard()
	return NewPaymentService(
		store,
		gateway,
		reconciler.NewReconciler(store, nopPublisher{}, log),
		validator.NewPaymentValidator(log),
		log,
	)
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %v", err)
	}
	if appErr.StatusCode() != want {
		t.Errorf("status = %d, want %d (%v)", appErr.StatusCode(), want, appErr)
	}
}

// ────────────────────────────────────────────────
// Tests for HandleWebhook()
// ────────────────────────────────────────────────

func TestHandleWebhook_PaidNotification(t *testing.T) {
	store := newMemoryStore(pendingBooking("ORDER_X"))
	svc := newTestService(store, &mockGateway{})

	err := svc.HandleWebhook(context.Background(), &model.PaymentWebhook{
		OrderID:       "ORDER_X",
		OrderStatus:   "PAID",
		PaymentID:     "pay_1",
		PaymentMethod: "upi",
	})
	if err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}

	stored := store.bookings["ORDER_X"]
	if stored.Status != model.BookingStatusPaid || stored.PaymentID != "pay_1" || stored.PaymentMethod != "upi" {
		t.Errorf("unexpected stored booking %+v", stored)
	}
	if stored.UpdatedAt.IsZero() {
		t.Errorf("updatedAt must be set")
	}
}

func TestHandleWebhook_PaidWithoutIdentifiers(t *testing.T) {
	store := newMemoryStore(pendingBooking("ORDER_X"))
	svc := newTestService(store, &mockGateway{})

	if err := svc.HandleWebhook(context.Background(), &model.PaymentWebhook{OrderID: "ORDER_X", OrderStatus: "PAID"}); err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}
	if got := store.bookings["ORDER_X"].PaymentID; got != reconciler.PaymentCompletedSentinel {
		t.Errorf("payment id = %q, want sentinel", got)
	}
}

func TestHandleWebhook_MissingOrderID(t *testing.T) {
	store := newMemoryStore(pendingBooking("ORDER_X"))
	svc := newTestService(store, &mockGateway{})

	err := svc.HandleWebhook(context.Background(), &model.PaymentWebhook{OrderStatus: "PAID"})

	assertStatus(t, err, http.StatusBadRequest)
	if apperrors.AsAppError(err).Message != "Order ID is required" {
		t.Errorf("message = %q", apperrors.AsAppError(err).Message)
	}
	if store.lookups != 0 || store.updates != 0 {
		t.Errorf("store must not be touched, lookups=%d updates=%d", store.lookups, store.updates)
	}
}

func TestHandleWebhook_UnknownOrderIsAcknowledged(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, &mockGateway{})

	if err := svc.HandleWebhook(context.Background(), &model.PaymentWebhook{OrderID: "ORDER_GHOST", OrderStatus: "PAID"}); err != nil {
		t.Errorf("expected unknown order to be acknowledged, got %v", err)
	}
	if store.updates != 0 {
		t.Errorf("no update expected")
	}
}

func TestHandleWebhook_StoreFailure(t *testing.T) {
	store := newMemoryStore(pendingBooking("ORDER_X"))
	store.findErr = errors.New("server selection timeout")
	svc := newTestService(store, &mockGateway{})

	err := svc.HandleWebhook(context.Background(), &model.PaymentWebhook{OrderID: "ORDER_X", OrderStatus: "PAID"})

	assertStatus(t, err, http.StatusInternalServerError)
	if apperrors.AsAppError(err).Message != "Failed to process webhook" {
		t.Errorf("message = %q", apperrors.AsAppError(err).Message)
	}
}

// ────────────────────────────────────────────────
// Tests for Verify()
// ────────────────────────────────────────────────

func TestVerify_Paid(t *testing.T) {
	store := newMemoryStore(pendingBooking("ORDER_Y"))
	gateway := &mockGateway{
		configured: true,
		order: &cashfree.Order{
			OrderID:     "ORDER_Y",
			OrderStatus: "PAID",
			PaymentDetails: &model.PaymentDetails{
				AuthID:        "auth_9",
				PaymentMethod: "card",
				BankReference: "BR9",
			},
		},
	}
	svc := newTestService(store, gateway)

	result, err := svc.Verify(context.Background(), &model.VerifyPaymentRequest{OrderID: "ORDER_Y"})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if result.OrderStatus != "PAID" {
		t.Errorf("order status = %s", result.OrderStatus)
	}
	if result.Booking.Status != model.BookingStatusPaid || result.Booking.PaymentID != "auth_9" {
		t.Errorf("unexpected booking %+v", result.Booking)
	}
	if result.PaymentDetails.BankReference != "BR9" {
		t.Errorf("payment details not returned: %+v", result.PaymentDetails)
	}
	if store.bookings["ORDER_Y"].Status != model.BookingStatusPaid {
		t.Errorf("stored booking not updated")
	}
}

func TestVerify_PaymentsFallback(t *testing.T) {
	store := newMemoryStore(pendingBooking("ORDER_Y"))
	gateway := &mockGateway{
		configured: true,
		order: &cashfree.Order{
			OrderStatus: "FAILED",
			Payments:    []byte(`{"payment_message":"Card declined"}`),
		},
	}
	svc := newTestService(store, gateway)

	result, err := svc.Verify(context.Background(), &model.VerifyPaymentRequest{OrderID: "ORDER_Y"})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if result.Booking.Status != model.BookingStatusFailed || result.Booking.PaymentMessage != "Card declined" {
		t.Errorf("unexpected booking %+v", result.Booking)
	}
}

func TestVerify_UnknownOrder(t *testing.T) {
	store := newMemoryStore()
	gateway := &mockGateway{configured: true}
	svc := newTestService(store, gateway)

	_, err := svc.Verify(context.Background(), &model.VerifyPaymentRequest{OrderID: "ORDER_GHOST"})

	assertStatus(t, err, http.StatusNotFound)
	if apperrors.AsAppError(err).Message != "Booking not found" {
		t.Errorf("message = %q", apperrors.AsAppError(err).Message)
	}
	if len(gateway.fetched) != 0 {
		t.Errorf("provider must not be called for an unknown booking")
	}
	if store.updates != 0 {
		t.Errorf("no update expected")
	}
}

func TestVerify_Errors(t *testing.T) {
	tests := []struct {
		name       string
		orderID    string
		gateway    *mockGateway
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing order id",
			orderID:    " ",
			gateway:    &mockGateway{configured: true},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeInvalidInput,
		},
		{
			name:       "provider not configured",
			orderID:    "ORDER_Y",
			gateway:    &mockGateway{configured: false},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeConfiguration,
		},
		{
			name:    "provider failure",
			orderID: "ORDER_Y",
			gateway: &mockGateway{
				configured: true,
				err:        &cashfree.APIError{StatusCode: 404, Code: "order_not_found", Message: "order not found"},
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore(pendingBooking("ORDER_Y"))
			svc := newTestService(store, tt.gateway)

			_, err := svc.Verify(context.Background(), &model.VerifyPaymentRequest{OrderID: tt.orderID})

			assertStatus(t, err, tt.wantStatus)
			if code := apperrors.AsAppError(err).Code; code != tt.wantCode {
				t.Errorf("code = %s, want %s", code, tt.wantCode)
			}
			if store.updates != 0 {
				t.Errorf("no update expected")
			}
			if store.bookings["ORDER_Y"].Status != model.BookingStatusPending {
				t.Errorf("booking must stay pending")
			}
		})
	}
}
