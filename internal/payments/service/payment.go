package service

import (
	"context"
	"errors"

	bookingserrors "consultpay/internal/bookings/errors"
	"consultpay/internal/payments/reconciler"
	"consultpay/internal/payments/validator"
	"consultpay/pkg/cashfree"
	apperrors "consultpay/pkg/errors"
	"consultpay/pkg/logger"
	"consultpay/pkg/model"
)

type PaymentService interface {
	Verify(ctx context.Context, req *model.VerifyPaymentRequest) (*model.VerifyPaymentResult, error)
	HandleWebhook(ctx context.Context, notification *model.PaymentWebhook) error
}

// OrderFetcher reads the authoritative order state from the payment provider.
type OrderFetcher interface {
	Configured() bool
	FetchOrder(ctx context.Context, orderID string) (*cashfree.Order, error)
}

type paymentService struct {
	store      reconciler.BookingStore
	gateway    OrderFetcher
	reconciler *reconciler.Reconciler
	validator  *validator.PaymentValidator
	log        *logger.Logger
}

func NewPaymentService(
	store reconciler.BookingStore,
	gateway OrderFetcher,
	reconciler *reconciler.Reconciler,
	validator *validator.PaymentValidator,
	log *logger.Logger,
) PaymentService {
	return &paymentService{
		store:      store,
		gateway:    gateway,
		reconciler: reconciler,
		validator:  validator,
		log:        log,
	}
}

// Verify pulls the order from the provider and reconciles the booking with it. Unknown bookings are
// rejected before the provider is contacted.
func (s *paymentService) Verify(ctx context.Context, req *model.VerifyPaymentRequest) (*model.VerifyPaymentResult, error) {
	if err := s.validator.ValidateVerify(req); err != nil {
		return nil, apperrors.InvalidInput("Order ID is required")
	}
	log := s.log.With("order_id", req.OrderID)

	if !s.gateway.Configured() {
		log.Error("Payment gateway credentials are missing")
		return nil, apperrors.Configuration(
			"Cashfree configuration is missing. Please check CASHFREE_APP_ID and CASHFREE_SECRET_KEY environment variables.",
			cashfree.ErrNotConfigured,
		)
	}

	if _, err := s.store.FindByOrderID(ctx, req.OrderID); err != nil {
		return nil, s.lookupError(log, req.OrderID, err)
	}

	order, err := s.gateway.FetchOrder(ctx, req.OrderID)
	if err != nil {
		log.Error("Failed to fetch payment order", "error", err)
		appErr := apperrors.Upstream("Failed to verify payment", err)
		var apiErr *cashfree.APIError
		if errors.As(err, &apiErr) {
			appErr = appErr.WithDetails(apiErr.Details())
		}
		return nil, appErr
	}

	details := order.Details()
	booking, _, err := s.reconciler.Reconcile(ctx, req.OrderID, order.OrderStatus, details)
	if err != nil {
		return nil, s.lookupError(log, req.OrderID, err)
	}

	return &model.VerifyPaymentResult{
		OrderStatus:    order.OrderStatus,
		PaymentDetails: details,
		Booking:        booking,
	}, nil
}

// HandleWebhook reconciles a pushed notification. Notifications for unknown orders are logged and
// acknowledged so the provider stops redelivering them.
func (s *paymentService) HandleWebhook(ctx context.Context, notification *model.PaymentWebhook) error {
	if err := s.validator.ValidateWebhook(notification); err != nil {
		return apperrors.InvalidInput("Order ID is required")
	}
	log := s.log.With("order_id", notification.OrderID)

	log.Info("Payment webhook received",
		"order_status", notification.OrderStatus,
		"payment_status", notification.PaymentStatus,
	)

	_, _, err := s.reconciler.Reconcile(ctx, notification.OrderID, notification.OrderStatus, notification.Details())
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			log.Warn("Webhook received for unknown booking")
			return nil
		}
		log.Error("Failed to process webhook", "error", err)
		return apperrors.Internal("Failed to process webhook", err)
	}

	return nil
}

func (s *paymentService) lookupError(log *logger.Logger, orderID string, err error) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		log.Warn("Verification requested for unknown booking")
		return apperrors.NotFoundWithID("Booking not found", orderID)
	}
	log.Error("Failed to verify payment", "error", err)
	return apperrors.Internal("Failed to verify payment", err)
}
