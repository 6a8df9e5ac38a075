package cashfree

import (
	"encoding/json"
	"errors"
	"fmt"

	"consultpay/pkg/client"
)

var (
	ErrNotConfigured         = errors.New("cashfree credentials are not configured")
	ErrMissingPaymentSession = errors.New("payment session id missing from create order response")
)

// APIError is a non-2xx response from the payment gateway.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Body       []byte `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cashfree api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("cashfree api error (status %d)", e.StatusCode)
}

// Details returns the decoded error body, or nil when it is not a JSON object.
func (e *APIError) Details() map[string]any {
	var details map[string]any
	if err := json.Unmarshal(e.Body, &details); err != nil {
		return nil
	}
	return details
}

func newAPIError(resp *client.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: resp.Body}
	if err := json.Unmarshal(resp.Body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = client.GetErrorMessage(resp)
	}
	return apiErr
}
