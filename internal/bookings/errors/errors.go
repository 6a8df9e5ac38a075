package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrDuplicateOrderID = errors.New("booking with this order id already exists")

	ErrInvalidBookingDateTime = errors.New("invalid booking date time")
)
