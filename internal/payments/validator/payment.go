package validator

import (
	"errors"
	"strings"

	bookingvalidator "consultpay/internal/bookings/validator"
	"consultpay/pkg/logger"
	"consultpay/pkg/model"

	"github.com/go-playground/validator/v10"
)

type PaymentValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPaymentValidator(log *logger.Logger) *PaymentValidator {
	return &PaymentValidator{
		validate: bookingvalidator.NewStructValidator(),
		logger:   log,
	}
}

// ValidateVerify trims the order id in place and checks it is present.
func (v *PaymentValidator) ValidateVerify(req *model.VerifyPaymentRequest) error {
	req.OrderID = strings.TrimSpace(req.OrderID)
	return v.check(req)
}

// ValidateWebhook trims the identifying fields in place and checks the order id is present.
func (v *PaymentValidator) ValidateWebhook(notification *model.PaymentWebhook) error {
	notification.OrderID = strings.TrimSpace(notification.OrderID)
	notification.OrderStatus = strings.TrimSpace(notification.OrderStatus)
	return v.check(notification)
}

func (v *PaymentValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return bookingvalidator.TranslateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}
