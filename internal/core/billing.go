package core

import (
	"context"
	"fmt"
	"time"

	"github.com/edvin/jobboard/internal/model"
)

// BillingService implements the tenant billing lifecycle: trial activation,
// conversion to paid periods, and expiry. Every mutation is a single
// conditional UPDATE so concurrent callers (payment webhook vs the daily
// recompute) cannot produce partial writes or lost updates.
type BillingService struct {
	db      DB
	plans   *PlanService
	tenants *TenantService
	clock   Clock
}

func NewBillingService(db DB, plans *PlanService, clock Clock) *BillingService {
	return &BillingService{db: db, plans: plans, tenants: NewTenantService(db), clock: clock}
}

// StartTrial puts a tenant on the given plan.
//
// Plans with trial days start a trial window; free plans grant perpetual
// access immediately. A paid plan without trial days leaves the tenant in
// pending_payment — access is only granted once ActivatePaidPeriod is called
// with a confirmed payment.
func (s *BillingService) StartTrial(ctx context.Context, tenantID, planID string) (*model.Tenant, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()

	var (
		status         string
		trialStartedAt *time.Time
		trialEndsAt    *time.Time
		premiumUntil   *time.Time
	)
	switch {
	case plan.TrialDays > 0:
		ends := now.Add(time.Duration(plan.TrialDays) * 24 * time.Hour)
		status = model.BillingTrial
		trialStartedAt = &now
		trialEndsAt = &ends
		// Mirror the trial window so access checks that only look at
		// premium_until see the same deadline.
		premiumUntil = &ends
	case plan.IsFree():
		status = model.BillingActive
	default:
		status = model.BillingPendingPayment
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE tenants
		 SET plan_id = $1, billing_status = $2, trial_started_at = $3, trial_ends_at = $4, premium_until = $5, updated_at = $6
		 WHERE id = $7`,
		planID, status, trialStartedAt, trialEndsAt, premiumUntil, now, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("start trial for tenant %s: %w", tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTenantNotFound
	}

	return &model.Tenant{
		ID:             tenantID,
		BillingStatus:  status,
		PlanID:         &planID,
		TrialStartedAt: trialStartedAt,
		TrialEndsAt:    trialEndsAt,
		PremiumUntil:   premiumUntil,
		UpdatedAt:      now,
	}, nil
}

// ActivatePaidPeriod grants one paid period starting at periodStart (now when
// nil). Invoked after a confirmed payment event; the caller is responsible
// for de-duplicating repeated webhook deliveries by payment id.
func (s *BillingService) ActivatePaidPeriod(ctx context.Context, tenantID, planID string, periodStart *time.Time) (*model.Tenant, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	start := now
	if periodStart != nil {
		start = periodStart.UTC()
	}
	until := start.AddDate(0, plan.PeriodMonths(), 0)

	tag, err := s.db.Exec(ctx,
		`UPDATE tenants
		 SET plan_id = $1, billing_status = $2, trial_started_at = NULL, trial_ends_at = NULL, premium_until = $3, updated_at = $4
		 WHERE id = $5`,
		planID, model.BillingActive, until, now, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("activate paid period for tenant %s: %w", tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTenantNotFound
	}

	return &model.Tenant{
		ID:            tenantID,
		BillingStatus: model.BillingActive,
		PlanID:        &planID,
		PremiumUntil:  &until,
		UpdatedAt:     now,
	}, nil
}

// ExpirePremium revokes access for a tenant immediately. This is the explicit
// ops path: any trial or active tenant is downgraded regardless of how much
// window remains. Trial history and plan reference are preserved for win-back.
func (s *BillingService) ExpirePremium(ctx context.Context, tenantID string) (*model.Tenant, error) {
	now := s.clock.Now().UTC()

	// The status guard means an already-downgraded row is left alone; the
	// fetch below returns whatever state won.
	_, err := s.db.Exec(ctx,
		`UPDATE tenants
		 SET billing_status = $1, premium_until = NULL, updated_at = $2
		 WHERE id = $3 AND billing_status IN ($4, $5)`,
		model.BillingPastDue, now, tenantID, model.BillingTrial, model.BillingActive,
	)
	if err != nil {
		return nil, fmt.Errorf("expire premium for tenant %s: %w", tenantID, err)
	}

	return s.tenants.GetByID(ctx, tenantID)
}

// ExpireLapsed downgrades a tenant only if its premium window has already
// passed. The time predicate protects against the race where a payment
// webhook re-activates a tenant between the recompute's selection and its
// per-tenant expiry: the re-activated row carries a future premium_until and
// no longer matches. Returns false when the guard did not match and nothing
// was written.
func (s *BillingService) ExpireLapsed(ctx context.Context, tenantID string) (bool, error) {
	now := s.clock.Now().UTC()

	tag, err := s.db.Exec(ctx,
		`UPDATE tenants
		 SET billing_status = $1, premium_until = NULL, updated_at = $2
		 WHERE id = $3 AND billing_status IN ($4, $5)
		   AND premium_until IS NOT NULL AND premium_until <= $2`,
		model.BillingPastDue, now, tenantID, model.BillingTrial, model.BillingActive,
	)
	if err != nil {
		return false, fmt.Errorf("expire lapsed tenant %s: %w", tenantID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListLapsed returns tenants whose access window has already passed and who
// still hold trial or active status. The daily recompute pass must call
// ExpirePremium for each of them. Trial tenants carry their trial deadline
// mirrored into premium_until, so one predicate covers both kinds. Free-tier
// tenants have a NULL premium_until and are never selected.
func (s *BillingService) ListLapsed(ctx context.Context) ([]model.Tenant, error) {
	now := s.clock.Now().UTC()
	rows, err := s.db.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants
		 WHERE billing_status IN ($1, $2)
		   AND premium_until IS NOT NULL AND premium_until <= $3
		 ORDER BY id`,
		model.BillingTrial, model.BillingActive, now,
	)
	if err != nil {
		return nil, fmt.Errorf("list lapsed tenants: %w", err)
	}
	defer rows.Close()

	var tenants []model.Tenant
	for rows.Next() {
		var t model.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.BillingStatus, &t.PlanID,
			&t.TrialStartedAt, &t.TrialEndsAt, &t.PremiumUntil, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lapsed tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// HasAccess reports whether a tenant has access at the given instant.
// The boundary is exclusive: access ends exactly at the expiry timestamp.
// An active tenant without a premium window is on the perpetual free tier.
func HasAccess(t *model.Tenant, now time.Time) bool {
	switch t.BillingStatus {
	case model.BillingActive:
		if t.PremiumUntil == nil {
			return true
		}
		return now.Before(*t.PremiumUntil)
	case model.BillingTrial:
		return t.TrialEndsAt != nil && now.Before(*t.TrialEndsAt)
	default:
		return false
	}
}
