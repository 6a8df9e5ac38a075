package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"consultpay/pkg/logger"
)

const (
	WebhookTimestampHeader = "x-webhook-timestamp"
	WebhookSignatureHeader = "x-webhook-signature"
)

// WebhookSignatureVerification rejects payment notifications whose signature does not equal
// base64(HMAC-SHA256(secret, timestamp + body)).
func WebhookSignatureVerification(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timestamp := r.Header.Get(WebhookTimestampHeader)
			signature := r.Header.Get(WebhookSignatureHeader)

			if timestamp == "" || signature == "" {
				rejectWebhook(w, log, r, "Missing webhook signature headers")
				return
			}

			body, err := readAndRestoreBody(r)
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					log.Warn("Payment webhook body too large",
						"request_id", RequestID(r.Context()),
						"limit", maxErr.Limit,
						"path", r.URL.Path,
					)
					writeRejection(w, http.StatusRequestEntityTooLarge, "Request body too large")
					return
				}
				rejectWebhook(w, log, r, "Failed to read request body")
				return
			}

			if !VerifyWebhookSignature(secret, timestamp, body, signature) {
				rejectWebhook(w, log, r, "Invalid webhook signature")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func SignWebhook(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func VerifyWebhookSignature(secret, timestamp string, body []byte, signature string) bool {
	expected := SignWebhook(secret, timestamp, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func readAndRestoreBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}

func rejectWebhook(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Payment webhook verification failed",
		"request_id", RequestID(r.Context()),
		"reason", reason,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
	)

	writeRejection(w, http.StatusUnauthorized, "Unauthorized")
}
