// Package reconciler maps payment provider order statuses onto stored bookings.
package reconciler

import (
	"context"
	"strings"
	"time"

	"consultpay/internal/events"
	"consultpay/pkg/cashfree"
	"consultpay/pkg/logger"
	"consultpay/pkg/model"
)

// PaymentCompletedSentinel is stored as the payment id of a paid booking when the provider reported neither
// a payment id nor an auth id.
const PaymentCompletedSentinel = "PAYMENT_COMPLETED"

// Apply returns current with providerStatus and details applied, together with the partial update that
// persists the same change. An empty providerStatus leaves the status untouched.
func Apply(current model.Booking, providerStatus string, details model.PaymentDetails, now time.Time) (model.Booking, model.BookingStatusUpdate) {
	next := current
	update := model.BookingStatusUpdate{
		Status:    current.Status,
		UpdatedAt: now,
	}

	switch providerStatus {
	case "":
	case cashfree.OrderStatusPaid:
		update.Status = model.BookingStatusPaid
		update.PaymentID = stringPtr(paymentID(details))
		update.PaymentMethod = nonEmpty(details.PaymentMethod)
		update.PaymentTime = nonEmpty(details.PaymentTime)
		update.BankReference = nonEmpty(details.BankReference)
	case cashfree.OrderStatusExpired:
		update.Status = model.BookingStatusCancelled
	case cashfree.OrderStatusFailed:
		update.Status = model.BookingStatusFailed
		update.PaymentMessage = nonEmpty(details.PaymentMessage)
	case cashfree.OrderStatusPending:
		update.Status = model.BookingStatusPending
	default:
		update.Status = strings.ToLower(providerStatus)
	}

	next.Status = update.Status
	next.UpdatedAt = now
	if update.PaymentID != nil {
		next.PaymentID = *update.PaymentID
	}
	if update.PaymentMethod != nil {
		next.PaymentMethod = *update.PaymentMethod
	}
	if update.PaymentTime != nil {
		next.PaymentTime = *update.PaymentTime
	}
	if update.BankReference != nil {
		next.BankReference = *update.BankReference
	}
	if update.PaymentMessage != nil {
		next.PaymentMessage = *update.PaymentMessage
	}

	return next, update
}

func paymentID(details model.PaymentDetails) string {
	switch {
	case details.PaymentID != "":
		return details.PaymentID
	case details.AuthID != "":
		return details.AuthID
	default:
		return PaymentCompletedSentinel
	}
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringPtr(value string) *string {
	return &value
}

// BookingStore is the subset of the booking repository the reconciler writes through.
type BookingStore interface {
	FindByOrderID(ctx context.Context, orderID string) (*model.Booking, error)
	UpdateStatusByOrderID(ctx context.Context, orderID string, update model.BookingStatusUpdate) (*model.Booking, error)
}

type Reconciler struct {
	store     BookingStore
	publisher events.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewReconciler(store BookingStore, publisher events.Publisher, log *logger.Logger) *Reconciler {
	return &Reconciler{
		store:     store,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Reconcile applies providerStatus to the booking identified by orderID and returns the stored row after
// the write along with the status it had before. The write is unconditional: the last reconciliation wins.
// A missing booking yields the repository's not-found error and nothing is written.
func (r *Reconciler) Reconcile(ctx context.Context, orderID, providerStatus string, details model.PaymentDetails) (*model.Booking, string, error) {
	current, err := r.store.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	previousStatus := current.Status
	_, update := Apply(*current, providerStatus, details, r.now())

	updated, err := r.store.UpdateStatusByOrderID(ctx, orderID, update)
	if err != nil {
		return nil, previousStatus, err
	}

	r.log.Info("Booking status reconciled",
		"order_id", orderID,
		"provider_status", providerStatus,
		"previous_status", previousStatus,
		"status", updated.Status,
	)

	if updated.Status != previousStatus {
		r.publisher.BookingStatusChanged(ctx, updated, previousStatus, providerStatus)
	}

	return updated, previousStatus, nil
}
