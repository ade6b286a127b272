package util

import (
	"context"
	"encoding/json"
	"errors"
	"net"
)

// ClassifyError returns a short label for err, suitable for logs and metric
// labels.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	// context first: *url.Error wraps it and also reports Timeout()
	if errors.Is(err, context.Canceled) {
		return "context_canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return "json_decode_error"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "network_timeout"
		}
		return "network_error"
	}

	return "unknown_error"
}

// IsTransient reports whether err looks like a network or timeout failure,
// the kind that says something about the remote's health. Caller
// cancellation and malformed payloads do not.
func IsTransient(err error) bool {
	switch ClassifyError(err) {
	case "timeout", "network_timeout", "network_error":
		return true
	default:
		return false
	}
}
