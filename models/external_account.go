package models

import "time"

// ExternalAccount links an internal user to the upstream betting system.
// Only rows with IsActive=true are usable; rotated accounts are
// deactivated, never deleted.
type ExternalAccount struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	ExternalUserID string    `db:"external_user_id"`
	SecretKey      string    `db:"external_secret_key"`
	IsActive       bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
}

// AccountInfo is the external account projection returned to callers.
// The secret key never leaves the core.
type AccountInfo struct {
	ExternalUserID string `json:"external_user_id"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
}

// NewAccountInfo projects an account to its public fields.
func NewAccountInfo(a *ExternalAccount) *AccountInfo {
	return &AccountInfo{
		ExternalUserID: a.ExternalUserID,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
