// Package workflow implements the Temporal cron workflows that drive the
// billing lifecycle.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/edvin/jobboard/internal/activity"
)

// BillingRecomputeWorkflow runs daily and downgrades tenants whose trial or
// paid premium window has passed. Each tenant is expired independently so one
// failure does not block the rest of the batch.
func BillingRecomputeWorkflow(ctx workflow.Context) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var lapsed []activity.LapsedTenant
	err := workflow.ExecuteActivity(ctx, "ListLapsedTenants").Get(ctx, &lapsed)
	if err != nil {
		return err
	}

	logger := workflow.GetLogger(ctx)
	logger.Info("found lapsed tenants", "count", len(lapsed))

	failed := 0
	for _, t := range lapsed {
		err := workflow.ExecuteActivity(ctx, "ExpireTenantPremium", t.ID).Get(ctx, nil)
		if err != nil {
			logger.Error("failed to expire tenant", "tenantID", t.ID, "error", err)
			failed++
			// Continue expiring other tenants even if one fails.
			continue
		}
		logger.Info("downgraded lapsed tenant", "tenantID", t.ID, "name", t.Name)
	}

	if failed > 0 {
		logger.Warn("recompute finished with failures", "failed", failed, "total", len(lapsed))
	}
	return nil
}
