package models

import "time"

// APICallLog is a write-only audit record of one terminal upstream API
// call outcome. Retried attempts collapse into a single row.
type APICallLog struct {
	ID                int64     `db:"id"`
	UserID            *int64    `db:"user_id"`
	Endpoint          string    `db:"endpoint"`
	Method            string    `db:"method"`
	RequestBody       []byte    `db:"request_body"`
	ResponseBody      []byte    `db:"response_body"`
	StatusCode        int       `db:"status_code"`
	RequestDurationMs int64     `db:"request_duration_ms"`
	IPAddress         *string   `db:"ip_address"`
	CreatedAt         time.Time `db:"created_at"`
}
