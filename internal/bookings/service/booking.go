package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"time"

	bookingserrors "consultpay/internal/bookings/errors"
	"consultpay/internal/bookings/repository"
	"consultpay/internal/bookings/validator"
	"consultpay/internal/events"
	"consultpay/pkg/cashfree"
	"consultpay/pkg/config"
	apperrors "consultpay/pkg/errors"
	"consultpay/pkg/model"
	"consultpay/pkg/sanitizer"
)

const (
	orderExpiry        = 24 * time.Hour
	paymentMethods     = "cc,dc,upi"
	consultationItemID = "consultation_fee"
	consultationItem   = "Doctor Consultation"
	bookingTypeTag     = "doctor_consultation"
	orderIDSuffixLen   = 9
	base36Alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
)

type BookingService interface {
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResult, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Booking, error)
	Health(ctx context.Context) error
}

// OrderCreator opens a hosted payment session for a booking.
type OrderCreator interface {
	Configured() bool
	CreateOrder(ctx context.Context, req cashfree.CreateOrderRequest) (*cashfree.Order, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	gateway   OrderCreator
	publisher events.Publisher
	validator *validator.BookingValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	gateway OrderCreator,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResult, error) {
	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, apperrors.Validation("All fields are required", validationErrs.Details())
		}
		return nil, apperrors.Validation("All fields are required", nil)
	}

	bookingDateTime, err := validator.ParseBookingDateTime(req.BookingDateTime)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid bookingDateTime").WithDetails(map[string]any{
			"bookingDateTime": req.BookingDateTime,
		})
	}

	if !s.gateway.Configured() {
		s.cfg.Log.Error("Payment gateway credentials are missing")
		return nil, apperrors.Configuration(
			"Cashfree configuration is missing. Please check CASHFREE_APP_ID and CASHFREE_SECRET_KEY environment variables.",
			cashfree.ErrNotConfigured,
		)
	}

	now := s.now()
	booking := &model.Booking{
		PatientName:     req.PatientName,
		Email:           req.Email,
		MobileNumber:    sanitizer.NormalizePhone(req.MobileNumber, s.cfg.DefaultPhoneRegion),
		BookingDateTime: bookingDateTime,
		Reason:          req.Reason,
		OrderID:         GenerateOrderID(now),
		Amount:          s.cfg.BookingAmount,
		Currency:        s.cfg.BookingCurrency,
		Status:          model.BookingStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	log := s.cfg.Log.With("order_id", booking.OrderID)

	if err := s.repo.Create(ctx, booking); err != nil {
		log.Error("Failed to persist booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}
	log.Info("Booking created", "status", booking.Status, "amount", booking.Amount)
	s.publisher.BookingCreated(ctx, booking)

	order, err := s.gateway.CreateOrder(ctx, s.buildOrderRequest(booking, now))
	if err != nil {
		log.Error("Failed to create payment order", "error", err)
		appErr := apperrors.Upstream("Failed to create booking", err)
		var apiErr *cashfree.APIError
		if errors.As(err, &apiErr) {
			appErr = appErr.WithDetails(apiErr.Details())
		}
		return nil, appErr
	}

	log.Info("Payment session created", "order_status", order.OrderStatus)
	return &model.CreateBookingResult{
		OrderID:          booking.OrderID,
		PaymentSessionID: order.PaymentSessionID,
		PaymentURL:       order.PaymentURL(),
	}, nil
}

func (s *bookingService) GetByOrderID(ctx context.Context, orderID string) (*model.Booking, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, apperrors.InvalidInput("Order ID is required")
	}

	booking, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking not found", orderID)
		}
		s.cfg.Log.Error("Failed to get booking status", "order_id", orderID, "error", err)
		return nil, apperrors.Internal("Failed to get booking status", err)
	}

	return booking, nil
}

func (s *bookingService) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *bookingService) sanitize(req *model.CreateBookingRequest) {
	req.PatientName = sanitizer.NormalizeName(req.PatientName)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)
	req.BookingDateTime = strings.TrimSpace(req.BookingDateTime)
	req.Reason = sanitizer.TrimAndNormalize(req.Reason)
}

func (s *bookingService) buildOrderRequest(booking *model.Booking, now time.Time) cashfree.CreateOrderRequest {
	baseURL := strings.TrimSuffix(s.cfg.PublicBaseURL, "/")

	return cashfree.CreateOrderRequest{
		OrderID:       booking.OrderID,
		OrderAmount:   booking.Amount,
		OrderCurrency: booking.Currency,
		CustomerDetails: cashfree.CustomerDetails{
			CustomerID:    "CUST_" + strconv.FormatInt(now.UnixMilli(), 10),
			CustomerName:  booking.PatientName,
			CustomerEmail: booking.Email,
			CustomerPhone: booking.MobileNumber,
		},
		OrderMeta: &cashfree.OrderMeta{
			ReturnURL:      baseURL + "/payment-success?order_id=" + url.QueryEscape(booking.OrderID),
			NotifyURL:      baseURL + "/api/payment/webhook",
			PaymentMethods: paymentMethods,
		},
		CartDetails: &cashfree.CartDetails{
			CartItems: []cashfree.CartItem{{
				ItemID:                  consultationItemID,
				ItemName:                consultationItem,
				ItemDescription:         "Consultation for: " + booking.Reason,
				ItemOriginalUnitPrice:   booking.Amount,
				ItemDiscountedUnitPrice: booking.Amount,
				ItemQuantity:            1,
				ItemCurrency:            booking.Currency,
			}},
		},
		OrderExpiryTime: now.Add(orderExpiry).Format(time.RFC3339),
		OrderNote:       fmt.Sprintf("Booking for %s - %s", booking.PatientName, booking.Reason),
		OrderTags: map[string]string{
			"booking_type": bookingTypeTag,
			"patient_name": booking.PatientName,
		},
	}
}

// GenerateOrderID returns ORDER_<unix millis>_<9 random base36 chars>. Uniqueness is probabilistic;
// the store's unique index on order_id rejects collisions.
func GenerateOrderID(now time.Time) string {
	suffix := make([]byte, orderIDSuffixLen)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}
	return "ORDER_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(suffix)
}
