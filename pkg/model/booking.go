package model

import (
	"encoding/json"
	"time"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusPaid      = "paid"
	BookingStatusFailed    = "failed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty"`
	PatientName     string    `json:"patientName" bson:"patient_name"`
	Email           string    `json:"email" bson:"email"`
	MobileNumber    string    `json:"mobileNumber" bson:"mobile_number"`
	BookingDateTime time.Time `json:"bookingDateTime" bson:"booking_date_time"`
	Reason          string    `json:"reason" bson:"reason"`
	OrderID         string    `json:"orderId" bson:"order_id"`
	Amount          float64   `json:"amount" bson:"amount"`
	Currency        string    `json:"currency,omitempty" bson:"currency"`
	Status          string    `json:"status" bson:"status"`
	PaymentID       string    `json:"paymentId,omitempty" bson:"payment_id,omitempty"`
	PaymentMethod   string    `json:"paymentMethod,omitempty" bson:"payment_method,omitempty"`
	PaymentTime     string    `json:"paymentTime,omitempty" bson:"payment_time,omitempty"`
	BankReference   string    `json:"bankReference,omitempty" bson:"bank_reference,omitempty"`
	PaymentMessage  string    `json:"paymentMessage,omitempty" bson:"payment_message,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updated_at"`
}

// BookingStatusUpdate is the partial update written by payment reconciliation.
// Nil pointers leave the stored value untouched.
type BookingStatusUpdate struct {
	Status         string
	PaymentID      *string
	PaymentMethod  *string
	PaymentTime    *string
	BankReference  *string
	PaymentMessage *string
	UpdatedAt      time.Time
}

// PaymentDetails carries the payment fields reported by the provider for an order.
type PaymentDetails struct {
	PaymentID      string      `json:"payment_id,omitempty"`
	AuthID         string      `json:"auth_id,omitempty"`
	PaymentStatus  string      `json:"payment_status,omitempty"`
	PaymentMessage string      `json:"payment_message,omitempty"`
	PaymentTime    string      `json:"payment_time,omitempty"`
	PaymentMethod  string      `json:"payment_method,omitempty"`
	BankReference  string      `json:"bank_reference,omitempty"`
	PaymentAmount  json.Number `json:"payment_amount,omitempty"`
	URL            string      `json:"url,omitempty"`
}

type CreateBookingRequest struct {
	PatientName     string `json:"patientName" validate:"required"`
	Email           string `json:"email" validate:"required"`
	MobileNumber    string `json:"mobileNumber" validate:"required"`
	BookingDateTime string `json:"bookingDateTime" validate:"required"`
	Reason          string `json:"reason" validate:"required"`
}

type CreateBookingResult struct {
	OrderID          string `json:"orderId"`
	PaymentSessionID string `json:"paymentSessionId"`
	PaymentURL       string `json:"paymentUrl,omitempty"`
}

type VerifyPaymentRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

type VerifyPaymentResult struct {
	OrderStatus    string         `json:"orderStatus"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
	Booking        *Booking       `json:"booking"`
}

// PaymentWebhook is the flat notification body pushed by the payment provider.
type PaymentWebhook struct {
	OrderID         string      `json:"orderId" validate:"required"`
	OrderAmount     json.Number `json:"orderAmount,omitempty"`
	OrderCurrency   string      `json:"orderCurrency,omitempty"`
	OrderStatus     string      `json:"orderStatus"`
	PaymentID       string      `json:"paymentId,omitempty"`
	PaymentAmount   json.Number `json:"paymentAmount,omitempty"`
	PaymentCurrency string      `json:"paymentCurrency,omitempty"`
	PaymentStatus   string      `json:"paymentStatus,omitempty"`
	PaymentMessage  string      `json:"paymentMessage,omitempty"`
	PaymentTime     string      `json:"paymentTime,omitempty"`
	BankReference   string      `json:"bankReference,omitempty"`
	AuthID          string      `json:"authId,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
}

func (w *PaymentWebhook) Details() PaymentDetails {
	return PaymentDetails{
		PaymentID:      w.PaymentID,
		AuthID:         w.AuthID,
		PaymentStatus:  w.PaymentStatus,
		PaymentMessage: w.PaymentMessage,
		PaymentTime:    w.PaymentTime,
		PaymentMethod:  w.PaymentMethod,
		BankReference:  w.BankReference,
		PaymentAmount:  w.PaymentAmount,
	}
}
