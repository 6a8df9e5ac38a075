package repository

import (
	"context"
	"time"

	"consultpay/pkg/config"
	"consultpay/pkg/model"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByOrderID(ctx context.Context, orderID string) (*model.Booking, error)
	// UpdateStatusByOrderID applies update unconditionally and returns the stored row after the write.
	UpdateStatusByOrderID(ctx context.Context, orderID string, update model.BookingStatusUpdate) (*model.Booking, error)
	Ping(ctx context.Context) error
}

// NewBookingRepository returns the store selected by cfg.StoreDriver.
func NewBookingRepository(cfg *config.Config) BookingRepository {
	if cfg.StoreDriver == config.StoreDriverPostgres {
		return NewPostgresBookingRepository(cfg)
	}
	return NewMongoBookingRepository(cfg)
}

// withTimeout bounds ctx by timeout unless ctx already expires sooner.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func stampCreated(booking *model.Booking) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	if booking.UpdatedAt.IsZero() {
		booking.UpdatedAt = booking.CreatedAt
	}
}

// statusFields flattens update into column/field names. Nil optional fields are left out.
func statusFields(update model.BookingStatusUpdate) map[string]any {
	updatedAt := update.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	fields := map[string]any{
		"status":     update.Status,
		"updated_at": updatedAt.Truncate(time.Millisecond),
	}
	if update.PaymentID != nil {
		fields["payment_id"] = *update.PaymentID
	}
	if update.PaymentMethod != nil {
		fields["payment_method"] = *update.PaymentMethod
	}
	if update.PaymentTime != nil {
		fields["payment_time"] = *update.PaymentTime
	}
	if update.BankReference != nil {
		fields["bank_reference"] = *update.BankReference
	}
	if update.PaymentMessage != nil {
		fields["payment_message"] = *update.PaymentMessage
	}
	return fields
}
