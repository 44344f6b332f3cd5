package model

import "time"

// WarningCandidate is one tenant/threshold match produced by a warning
// selector run. Derived fresh on every run, never persisted.
type WarningCandidate struct {
	TenantID           string    `json:"tenant_id"`
	TenantName         string    `json:"tenant_name"`
	Kind               string    `json:"kind"`
	ThresholdDays      int       `json:"threshold_days"`
	DaysLeft           int       `json:"days_left"`
	WarnForDate        time.Time `json:"warn_for_date"`
	RecipientAddresses []string  `json:"recipient_addresses"`
}

// SentWarning is a ledger row recording that a warning was delivered for a
// given tenant, kind, threshold, and expiry window. The uniqueness of
// (tenant_id, kind, threshold_days, expires_at) makes warning delivery
// idempotent across scheduler ticks and missed days.
type SentWarning struct {
	ID            string    `json:"id" db:"id"`
	TenantID      string    `json:"tenant_id" db:"tenant_id"`
	Kind          string    `json:"kind" db:"kind"`
	ThresholdDays int       `json:"threshold_days" db:"threshold_days"`
	ExpiresAt     time.Time `json:"expires_at" db:"expires_at"`
	SentAt        time.Time `json:"sent_at" db:"sent_at"`
}
