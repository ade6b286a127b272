package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoChoices   = errors.New("AI gateway returned no choices")
	ErrUnavailable = errors.New("AI gateway unavailable")
)

// UpstreamError is a non-2xx answer from the chat-completion endpoint.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI gateway error: %d", e.StatusCode)
}

func (e *UpstreamError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *UpstreamError) IsBillingExhausted() bool {
	return e.StatusCode == http.StatusPaymentRequired
}
