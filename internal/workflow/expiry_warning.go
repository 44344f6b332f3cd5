package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/edvin/jobboard/internal/model"
)

// ExpiryWarningWorkflow runs daily, finds tenants whose trial or premium
// window crosses a warning threshold, and emails their admins. The sent
// ledger is only updated after a successful delivery, so a failed send is
// retried on the next run.
func ExpiryWarningWorkflow(ctx workflow.Context, thresholds []int) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 60 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var candidates []model.WarningCandidate
	err := workflow.ExecuteActivity(ctx, "FindTenantsToWarn", thresholds).Get(ctx, &candidates)
	if err != nil {
		return err
	}

	logger := workflow.GetLogger(ctx)
	logger.Info("found tenants to warn", "count", len(candidates))

	for _, c := range candidates {
		err := workflow.ExecuteActivity(ctx, "SendExpiryWarning", c).Get(ctx, nil)
		if err != nil {
			logger.Error("failed to send expiry warning",
				"tenantID", c.TenantID, "kind", c.Kind, "thresholdDays", c.ThresholdDays, "error", err)
			// Leave the ledger untouched so the next run retries this tenant.
			continue
		}

		err = workflow.ExecuteActivity(ctx, "MarkWarningSent", c).Get(ctx, nil)
		if err != nil {
			// The email went out. A missing ledger row means at worst one
			// duplicate warning on the next run.
			logger.Error("failed to record sent warning",
				"tenantID", c.TenantID, "kind", c.Kind, "error", err)
			continue
		}

		logger.Info("sent expiry warning",
			"tenantID", c.TenantID, "kind", c.Kind, "thresholdDays", c.ThresholdDays, "daysLeft", c.DaysLeft)
	}

	return nil
}
