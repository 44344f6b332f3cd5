// Package activity implements the Temporal activities used by the
// billing cron workflows.
package activity

import (
	"context"
	"fmt"

	"github.com/edvin/jobboard/internal/core"
	"github.com/edvin/jobboard/internal/metrics"
	"github.com/edvin/jobboard/internal/model"
	"github.com/edvin/jobboard/internal/platform"
)

// BillingDB contains activities that read from and update the billing database.
type BillingDB struct {
	services *core.Services
}

// NewBillingDB creates a new BillingDB activity struct.
func NewBillingDB(services *core.Services) *BillingDB {
	return &BillingDB{services: services}
}

// LapsedTenant is the slim view of a tenant the recompute workflow needs.
type LapsedTenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListLapsedTenants returns tenants whose premium window has passed but whose
// billing status has not been downgraded yet.
func (a *BillingDB) ListLapsedTenants(ctx context.Context) ([]LapsedTenant, error) {
	tenants, err := a.services.Billing.ListLapsed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lapsed tenants: %w", err)
	}
	out := make([]LapsedTenant, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, LapsedTenant{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

// ExpireTenantPremium downgrades a single lapsed tenant to past_due. The
// guarded write is a no-op when a payment re-activated the tenant after it
// was selected, so a late-arriving webhook is never clobbered.
func (a *BillingDB) ExpireTenantPremium(ctx context.Context, tenantID string) error {
	expired, err := a.services.Billing.ExpireLapsed(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("expire tenant %s: %w", tenantID, err)
	}
	if expired {
		metrics.TenantsExpired.Inc()
	}
	return nil
}

// FindTenantsToWarn returns the warning candidates due today for the given
// threshold schedule.
func (a *BillingDB) FindTenantsToWarn(ctx context.Context, thresholds []int) ([]model.WarningCandidate, error) {
	return a.services.Warning.FindTenantsToWarn(ctx, thresholds)
}

// MarkWarningSent records a delivered warning in the sent ledger so it is not
// repeated on the next run.
func (a *BillingDB) MarkWarningSent(ctx context.Context, c model.WarningCandidate) error {
	return a.services.Warning.MarkWarningSent(ctx, c, platform.NewID())
}
