package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"betbroker/metrics"
	"betbroker/models"
)

// requestTimeout bounds each individual attempt against the upstream API.
const requestTimeout = 5 * time.Second

// Credentials identify a user towards the upstream betting API.
type Credentials struct {
	ExternalUserID string
	SecretKey      string
}

// AuditSink records the terminal outcome of an upstream API call.
// Implementations must be safe for concurrent use; failures are
// swallowed by the client and never reach business flows.
type AuditSink interface {
	Record(ctx context.Context, entry *models.APICallLog) error
}

// RetryPolicy decides whether and when a failed attempt is repeated.
// MaxRetries bounds additional attempts beyond the first.
type RetryPolicy struct {
	MaxRetries int
	Backoff    func(attempt int) time.Duration
	Retryable  func(statusCode int, err error) bool
}

// DefaultRetryPolicy retries timeouts and 5xx responses up to twice,
// waiting 300ms, then 600ms between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * 300 * time.Millisecond
		},
		Retryable: func(statusCode int, err error) bool {
			if err != nil {
				// Transport-level failure: connection refused, timeout, etc.
				return true
			}
			return statusCode >= 500 && statusCode < 600
		},
	}
}

// Client issues signed requests to the upstream betting API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Audit   AuditSink
	Policy  RetryPolicy

	// sleep is swapped out in tests so retries never wait on real timers
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a client with the default retry policy
func New(baseURL string, audit AuditSink) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: requestTimeout},
		Audit:   audit,
		Policy:  DefaultRetryPolicy(),
		sleep:   sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Call sends a signed request to the upstream API and returns the raw
// response body. The body is serialized once, signed with the account
// secret and carried alongside the user-id and x-signature headers.
//
// Failed attempts are retried per the client's policy with cooperative
// backoff. Exactly one audit record is written per logical call,
// reflecting the terminal attempt; userID only scopes that record.
func (c *Client) Call(ctx context.Context, endpoint, method string, creds Credentials, body any, userID *int64) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}
	signature := Sign(payload, creds.SecretKey)
	url := c.BaseURL + endpoint

	start := time.Now()
	var lastErr error

	for attempt := 0; attempt <= c.Policy.MaxRetries; attempt++ {
		respBody, statusCode, err := c.do(ctx, url, method, payload, creds.ExternalUserID, signature)

		if err == nil && statusCode >= 200 && statusCode < 300 {
			c.record(userID, url, method, payload, respBody, statusCode, start)
			return respBody, nil
		}

		if err != nil {
			lastErr = fmt.Errorf("betting api request failed: %w", err)
			respBody = []byte(fmt.Sprintf("%q", err.Error()))
			// No response exists; the audit row carries 500
			statusCode = http.StatusInternalServerError
		} else {
			lastErr = &APIError{StatusCode: statusCode, Body: respBody}
		}

		if attempt < c.Policy.MaxRetries && c.Policy.Retryable(statusCode, err) {
			if serr := c.sleep(ctx, c.Policy.Backoff(attempt+1)); serr == nil {
				continue
			}
			// Context cancelled while backing off: stop retrying but
			// still leave the audit trail for the terminal attempt.
		}

		c.record(userID, url, method, payload, respBody, statusCode, start)
		return nil, lastErr
	}

	return nil, lastErr
}

// do performs a single attempt with its own timeout.
func (c *Client) do(ctx context.Context, url, method string, payload []byte, externalUserID, signature string) ([]byte, int, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, url, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("user-id", externalUserID)
	req.Header.Set("x-signature", signature)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return respBody, res.StatusCode, nil
}

// record writes the audit entry for the terminal attempt. Audit
// failures are logged and discarded; they never fail the call.
func (c *Client) record(userID *int64, url, method string, reqBody, respBody []byte, statusCode int, start time.Time) {
	duration := time.Since(start)

	metrics.ExternalAPICalls.WithLabelValues(url, method, fmt.Sprintf("%d", statusCode)).Inc()
	metrics.ExternalAPIDuration.WithLabelValues(url).Observe(duration.Seconds())

	if c.Audit == nil {
		return
	}
	if len(reqBody) == 0 {
		reqBody = emptyBody
	}
	entry := &models.APICallLog{
		UserID:            userID,
		Endpoint:          url,
		Method:            method,
		RequestBody:       reqBody,
		ResponseBody:      respBody,
		StatusCode:        statusCode,
		RequestDurationMs: duration.Milliseconds(),
	}
	// Detached context: a cancelled caller must not suppress the audit
	// write already in flight.
	auditCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Audit.Record(auditCtx, entry); err != nil {
		log.WithFields(log.Fields{
			"endpoint": url,
			"method":   method,
		}).WithError(err).Warn("Failed to record API call audit entry")
	}
}
