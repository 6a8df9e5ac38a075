// Package sanitizer normalizes booking input before validation and storage.
//
// All functions are idempotent. Invalid input is returned trimmed rather than
// rejected, so validation stays the caller's decision.
package sanitizer
