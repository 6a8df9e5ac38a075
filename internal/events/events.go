package events

import (
	"context"
	"time"

	"consultpay/pkg/kafka"
	"consultpay/pkg/logger"
	"consultpay/pkg/middleware"
	"consultpay/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"

	SchemaVersion = "1"

	// HeaderBookingStatus carries the booking status after the change so consumers can filter without decoding.
	HeaderBookingStatus = "booking-status"
)

// BookingEvent is the payload published for booking lifecycle changes.
type BookingEvent struct {
	EventType      string    `json:"eventType"`
	OrderID        string    `json:"orderId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	ProviderStatus string    `json:"providerStatus,omitempty"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency,omitempty"`
	PaymentID      string    `json:"paymentId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Publisher announces booking changes. Publishing is best effort and never fails the caller.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus, providerStatus string)
}

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaPublisher struct {
	producer messageProducer
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer messageProducer, source string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (p *KafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, BookingEvent{
		EventType:  EventBookingCreated,
		OrderID:    booking.OrderID,
		Status:     booking.Status,
		Amount:     booking.Amount,
		Currency:   booking.Currency,
		OccurredAt: booking.CreatedAt,
	})
}

func (p *KafkaPublisher) BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus, providerStatus string) {
	p.publish(ctx, BookingEvent{
		EventType:      EventBookingStatusChanged,
		OrderID:        booking.OrderID,
		Status:         booking.Status,
		PreviousStatus: previousStatus,
		ProviderStatus: providerStatus,
		Amount:         booking.Amount,
		Currency:       booking.Currency,
		PaymentID:      booking.PaymentID,
		OccurredAt:     booking.UpdatedAt,
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, event BookingEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	msg, err := kafka.NewMessage().
		WithKey(event.OrderID).
		WithEventID("").
		WithEventType(event.EventType).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithHeader(HeaderBookingStatus, event.Status).
		WithTimestamp(event.OccurredAt).
		WithValue(event).
		Build()
	if err != nil {
		p.log.Error("Failed to build booking event", "event_type", event.EventType, "order_id", event.OrderID, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking event",
			"event_type", event.EventType,
			"order_id", event.OrderID,
			"error", err,
		)
	}
}

// NopPublisher is used when event publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) BookingCreated(context.Context, *model.Booking) {}

func (NopPublisher) BookingStatusChanged(context.Context, *model.Booking, string, string) {}
