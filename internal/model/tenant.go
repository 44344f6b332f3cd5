package model

import "time"

// Tenant is an employer account subject to billing rules.
//
// BillingStatus is the source of truth for which expiry timestamp is
// authoritative: trial_ends_at while on trial, premium_until while active.
// An active tenant with a nil PremiumUntil is on a perpetual free-tier plan.
type Tenant struct {
	ID             string     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	BillingStatus  string     `json:"billing_status" db:"billing_status"`
	PlanID         *string    `json:"plan_id,omitempty" db:"plan_id"`
	TrialStartedAt *time.Time `json:"trial_started_at,omitempty" db:"trial_started_at"`
	TrialEndsAt    *time.Time `json:"trial_ends_at,omitempty" db:"trial_ends_at"`
	PremiumUntil   *time.Time `json:"premium_until,omitempty" db:"premium_until"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
