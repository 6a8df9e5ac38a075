package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"consultpay/pkg/model"
)

var orderSeq atomic.Int64

// NewOrderID returns a unique id in the ORDER_<millis>_<suffix> shape the service generates.
func NewOrderID() string {
	return fmt.Sprintf("ORDER_%d_it%d", time.Now().UnixMilli(), orderSeq.Add(1))
}

// NewPendingBooking builds a booking that satisfies the store schema.
func NewPendingBooking(orderID string) *model.Booking {
	return &model.Booking{
		PatientName:     "Asha Rao",
		Email:           "asha@example.com",
		MobileNumber:    "+919876543210",
		BookingDateTime: time.Now().UTC().Add(48 * time.Hour).Truncate(time.Millisecond),
		Reason:          "Follow-up consultation",
		OrderID:         orderID,
		Amount:          500,
		Currency:        "INR",
		Status:          model.BookingStatusPending,
	}
}
