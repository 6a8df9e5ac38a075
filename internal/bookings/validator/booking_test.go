package validator

import (
	"errors"
	"testing"
	"time"

	bookingserrors "consultpay/internal/bookings/errors"
	"consultpay/pkg/logger"
	"consultpay/pkg/model"
)

func validRequest() *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		PatientName:     "Asha Rao",
		Email:           "asha@example.com",
		MobileNumber:    "+919876543210",
		BookingDateTime: "2026-11-02T10:30",
		Reason:          "Follow-up",
	}
}

func TestBookingValidator_Validate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(*model.CreateBookingRequest)
		wantField string
	}{
		{name: "valid", mutate: func(*model.CreateBookingRequest) {}},
		{name: "missing patient name", mutate: func(r *model.CreateBookingRequest) { r.PatientName = "" }, wantField: "patientName"},
		{name: "missing email", mutate: func(r *model.CreateBookingRequest) { r.Email = "" }, wantField: "email"},
		{name: "missing mobile", mutate: func(r *model.CreateBookingRequest) { r.MobileNumber = "" }, wantField: "mobileNumber"},
		{name: "missing date time", mutate: func(r *model.CreateBookingRequest) { r.BookingDateTime = "" }, wantField: "bookingDateTime"},
		{name: "missing reason", mutate: func(r *model.CreateBookingRequest) { r.Reason = "" }, wantField: "reason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}

			var validationErrs ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(validationErrs) != 1 || validationErrs[0].Field != tt.wantField {
				t.Errorf("errors = %v, want single error on %s", validationErrs, tt.wantField)
			}
			if _, ok := validationErrs.Details()[tt.wantField]; !ok {
				t.Errorf("Details() missing %s", tt.wantField)
			}
		})
	}
}

func TestParseBookingDateTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "datetime-local",
			input: "2026-11-02T10:30",
			want:  time.Date(2026, 11, 2, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "datetime-local with seconds",
			input: "2026-11-02T10:30:15",
			want:  time.Date(2026, 11, 2, 10, 30, 15, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: "2026-11-02T16:00:00+05:30",
			want:  time.Date(2026, 11, 2, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with millis",
			input: "2026-11-02T10:30:00.000Z",
			want:  time.Date(2026, 11, 2, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "free text",
			input:   "next tuesday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBookingDateTime(tt.input)
			if tt.wantErr {
				if !errors.Is(err, bookingserrors.ErrInvalidBookingDateTime) {
					t.Fatalf("expected ErrInvalidBookingDateTime, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBookingDateTime() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseBookingDateTime() = %v, want %v", got, tt.want)
			}
		})
	}
}
