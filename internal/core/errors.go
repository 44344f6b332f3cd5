package core

import "errors"

var (
	// ErrPlanNotFound is returned when a referenced plan id has no catalog entry.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrTenantNotFound is returned when a tenant id does not exist.
	ErrTenantNotFound = errors.New("tenant not found")
)
