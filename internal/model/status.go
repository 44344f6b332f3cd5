package model

// Billing status constants for tenants.
//
// A tenant moves through these states via the billing lifecycle operations:
// StartTrial produces trial, active (free tier), or pending_payment;
// ActivatePaidPeriod always produces active; the daily recompute moves
// lapsed trial/active tenants to past_due.
const (
	BillingNone           = "none"
	BillingTrial          = "trial"
	BillingActive         = "active"
	BillingPastDue        = "past_due"
	BillingPendingPayment = "pending_payment"
)

// Warning kinds for expiry notifications.
const (
	WarningKindTrial   = "trial"
	WarningKindPremium = "premium"
)

// Plan billing intervals.
const (
	IntervalMonth = "month"
	IntervalYear  = "year"
)
