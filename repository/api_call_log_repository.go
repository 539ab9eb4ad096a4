package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"betbroker/database"
	"betbroker/models"
)

// APICallLogRepository implements the APICallLogRepository interface
// and the external client's AuditSink. It is always pool-backed: audit
// rows must survive even when the business transaction rolls back.
type APICallLogRepository struct {
	q queryable
}

// NewAPICallLogRepository creates a new audit log repository
func NewAPICallLogRepository(db *database.DB) *APICallLogRepository {
	return &APICallLogRepository{q: db.Pool}
}

// Record writes one audit row for the terminal outcome of an upstream call
func (r *APICallLogRepository) Record(ctx context.Context, entry *models.APICallLog) error {
	query := `
		INSERT INTO api_call_logs
		(user_id, endpoint, method, request_body, response_body, status_code, request_duration_ms, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.Endpoint,
		entry.Method,
		asJSON(entry.RequestBody),
		asJSON(entry.ResponseBody),
		entry.StatusCode,
		entry.RequestDurationMs,
		entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record api call log: %w", err)
	}

	return nil
}

// asJSON coerces a raw body into something the JSONB column accepts.
// Upstream error bodies are not always JSON; those are stored as a
// JSON string rather than dropped.
func asJSON(body []byte) []byte {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return body
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return quoted
}
