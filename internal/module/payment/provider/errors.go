package provider

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTimeout means the gateway did not answer within the client timeout.
	ErrTimeout = errors.New("gateway timeout")
	// ErrCircuitOpen means recent calls failed and the breaker is rejecting requests.
	ErrCircuitOpen = errors.New("gateway circuit open")
)

// Cause is one entry of the gateway's error cause list.
type Cause struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode int     `json:"status"`
	Code       string  `json:"error,omitempty"`
	Message    string  `json:"message"`
	Causes     []Cause `json:"cause,omitempty"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "gateway returned %d", e.StatusCode)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	for _, c := range e.Causes {
		fmt.Fprintf(&b, " [%s %s]", c.Code, c.Description)
	}
	return b.String()
}

// Retryable reports whether the gateway itself failed.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}
