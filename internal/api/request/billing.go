package request

import "time"

type StartTrial struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// PaymentWebhook is the payload posted by the payment provider after a
// confirmed charge.
type PaymentWebhook struct {
	TenantID string `json:"tenant_id" validate:"required"`
	PlanID   string `json:"plan_id" validate:"required"`
	// PeriodStart anchors the paid period; the charge time is used when
	// omitted.
	PeriodStart *time.Time `json:"period_start"`
}
