package external

import "fmt"

// APIError is returned when the upstream betting API answers with a
// non-2xx status. It carries the status and raw body so callers can
// surface upstream detail.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("betting api returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("betting api returned status %d", e.StatusCode)
}

// Retryable reports whether the failure is worth another attempt.
// Only server-side errors qualify; 4xx responses are never retried.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}
