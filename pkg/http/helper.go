package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "consultpay/pkg/errors"
)

// DecodeJSON reads a single JSON value from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body is required")
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.New(apperrors.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return apperrors.Wrap(err, apperrors.CodeInvalidInput, "Invalid JSON body", http.StatusBadRequest)
	}
	return nil
}
