package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"consultpay/pkg/kafka"
	"consultpay/pkg/logger"
	"consultpay/pkg/model"
)

type mockProducer struct {
	messages []kafka.Message
	err      error
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	m.messages = append(m.messages, msg)
	return m.err
}

func TestKafkaPublisher_BookingStatusChanged(t *testing.T) {
	producer := &mockProducer{}
	p := NewKafkaPublisher(producer, "bookings", logger.Discard())

	booking := &model.Booking{
		OrderID:   "ORDER_1",
		Status:    model.BookingStatusPaid,
		Amount:    500,
		Currency:  "INR",
		PaymentID: "pay_1",
		UpdatedAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}
	p.BookingStatusChanged(context.Background(), booking, model.BookingStatusPending, "PAID")

	if len(producer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(producer.messages))
	}
	msg := producer.messages[0]
	if msg.Key != "ORDER_1" {
		t.Errorf("key = %q, want ORDER_1", msg.Key)
	}
	if msg.GetEventType() != EventBookingStatusChanged {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.Headers[HeaderBookingStatus] != model.BookingStatusPaid {
		t.Errorf("booking status header = %q", msg.Headers[HeaderBookingStatus])
	}
	if msg.Headers[kafka.HeaderSource] != "bookings" {
		t.Errorf("source = %q", msg.Headers[kafka.HeaderSource])
	}

	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.PreviousStatus != model.BookingStatusPending || event.Status != model.BookingStatusPaid {
		t.Errorf("unexpected transition %s -> %s", event.PreviousStatus, event.Status)
	}
	if event.ProviderStatus != "PAID" || event.PaymentID != "pay_1" {
		t.Errorf("unexpected event %+v", event)
	}
}

func TestKafkaPublisher_FailureIsSwallowed(t *testing.T) {
	producer := &mockProducer{err: errors.New("broker down")}
	p := NewKafkaPublisher(producer, "bookings", logger.Discard())

	p.BookingCreated(context.Background(), &model.Booking{OrderID: "ORDER_1", Status: model.BookingStatusPending})

	if len(producer.messages) != 1 {
		t.Fatalf("expected publish attempt, got %d", len(producer.messages))
	}
}
